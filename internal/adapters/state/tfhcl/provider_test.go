package tfhcl_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/infra-board/internal/adapters/state/mapping"
	"github.com/olusolaa/infra-board/internal/adapters/state/tfhcl"
	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/errors"
	"github.com/olusolaa/infra-board/internal/log"
)

func loadDir(t *testing.T, cfg tfhcl.Config) (*domain.Snapshot, error) {
	t.Helper()
	p, err := tfhcl.NewProvider(cfg, log.NewNop())
	require.NoError(t, err)
	return p.Load(context.Background())
}

func byID(t *testing.T, snap *domain.Snapshot, id string) domain.Resource {
	t.Helper()
	for _, r := range snap.Resources {
		if r.ID == id {
			return r
		}
	}
	require.FailNowf(t, "resource not found", "no resource %s in snapshot", id)
	return domain.Resource{}
}

func TestNewProvider_RequiresDirectory(t *testing.T) {
	_, err := tfhcl.NewProvider(tfhcl.Config{}, log.NewNop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))
}

func TestProvider_LoadResourcesInFileOrder(t *testing.T) {
	snap, err := loadDir(t, tfhcl.Config{Directory: "testdata/basic"})
	require.NoError(t, err)

	ids := make([]string, 0, len(snap.Resources))
	for _, r := range snap.Resources {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{
		"aws_vpc.main",
		"aws_subnet.private",
		"aws_instance.web",
		"aws_dynamodb_table.events",
		"aws_security_group.ssh",
		"aws_sqs_queue.jobs",
	}, ids)
	assert.Equal(t, "tfhcl:testdata/basic", snap.Source)

	var categories []domain.Category
	for _, d := range snap.Domains {
		categories = append(categories, d.Category)
	}
	assert.Equal(t, []domain.Category{
		domain.CategoryNetworking, domain.CategoryCompute, domain.CategoryData, domain.CategoryMessaging,
	}, categories)
}

func TestProvider_LoadDeploymentConfigFromLocals(t *testing.T) {
	snap, err := loadDir(t, tfhcl.Config{Directory: "testdata/basic"})
	require.NoError(t, err)

	assert.Equal(t, domain.DeploymentConfig{
		PrimaryRegion:     "us-east-1",
		AvailabilityZones: []string{"us-east-1a", "us-east-1b", "us-east-1c"},
		ReplicaRegions:    []string{"us-west-2"},
	}, snap.Deployment)
}

func TestProvider_LoadInfersStrategies(t *testing.T) {
	snap, err := loadDir(t, tfhcl.Config{Directory: "testdata/basic"})
	require.NoError(t, err)

	subnet := byID(t, snap, "aws_subnet.private")
	require.NotNil(t, subnet.Deployment)
	assert.Equal(t, domain.StrategyPerAZ, subnet.Deployment.Strategy)
	assert.Equal(t, "local.availability_zones", subnet.Deployment.Params["source"])

	table := byID(t, snap, "aws_dynamodb_table.events")
	require.NotNil(t, table.Deployment)
	assert.Equal(t, domain.StrategyRegional, table.Deployment.Strategy)

	assert.Nil(t, byID(t, snap, "aws_vpc.main").Deployment)
}

func TestProvider_LoadEvaluatesArguments(t *testing.T) {
	snap, err := loadDir(t, tfhcl.Config{Directory: "testdata/basic"})
	require.NoError(t, err)

	vpc := byID(t, snap, "aws_vpc.main")
	assert.Equal(t, mapping.DomainID(domain.CategoryNetworking), vpc.DomainID)
	assert.Equal(t, "10.0.0.0/16", vpc.Arguments["cidr_block"])
	assert.Equal(t, map[string]string{"Environment": "dev", "Project": "board", "Name": "main"}, vpc.Arguments[domain.KeyTags])

	subnet := byID(t, snap, "aws_subnet.private")
	assert.Equal(t, "${aws_vpc.main.id}", subnet.Arguments["vpc_id"])
	assert.Equal(t, "${each.value}", subnet.Arguments["availability_zone"])
	assert.Empty(t, subnet.AvailabilityZone)
	assert.NotContains(t, subnet.Arguments, "for_each")

	web := byID(t, snap, "aws_instance.web")
	assert.Equal(t, "${data.aws_ami.ubuntu.id}", web.Arguments["ami"])
	assert.Equal(t, "${var.instance_type}", web.Arguments["instance_type"])
	assert.Equal(t, `${aws_subnet.private["us-east-1a"].id}`, web.Arguments["subnet_id"])
	assert.Equal(t, map[string]string{"Name": "web-dev", "Environment": "dev"}, web.Arguments[domain.KeyTags])
	assert.Equal(t, []any{map[string]any{"volume_size": int64(20)}}, web.Arguments["root_block_device"])
	assert.Len(t, web.Arguments["ebs_block_device"], 2)
	assert.NotContains(t, web.Arguments, "lifecycle")
	assert.NotContains(t, web.Arguments, "depends_on")

	table := byID(t, snap, "aws_dynamodb_table.events")
	assert.Equal(t, "events-${count.index}", table.Arguments["name"])

	sg := byID(t, snap, "aws_security_group.ssh")
	assert.Equal(t, []any{map[string]any{
		"from_port":   int64(22),
		"to_port":     int64(22),
		"protocol":    "tcp",
		"cidr_blocks": []any{"0.0.0.0/0"},
	}}, sg.Arguments["ingress"])
}

func TestProvider_LoadJSONConfiguration(t *testing.T) {
	snap, err := loadDir(t, tfhcl.Config{Directory: "testdata/basic"})
	require.NoError(t, err)

	queue := byID(t, snap, "aws_sqs_queue.jobs")
	assert.Equal(t, "jobs-dev", queue.Arguments["name"])
	assert.Equal(t, int64(30), queue.Arguments["visibility_timeout_seconds"])
	assert.Equal(t, "${aws_iam_policy.queue.arn}", queue.Arguments["policy"])
}

func TestProvider_LoadAppliesVarFiles(t *testing.T) {
	snap, err := loadDir(t, tfhcl.Config{Directory: "testdata/basic", VarFiles: []string{"prod.tfvars"}})
	require.NoError(t, err)

	web := byID(t, snap, "aws_instance.web")
	assert.Equal(t, "t3.large", web.Arguments["instance_type"])
	assert.Equal(t, map[string]string{"Name": "web-prod", "Environment": "prod"}, web.Arguments[domain.KeyTags])
	assert.Equal(t, "jobs-prod", byID(t, snap, "aws_sqs_queue.jobs").Arguments["name"])
}

func TestProvider_LoadErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  tfhcl.Config
		code errors.Code
	}{
		{name: "missing directory", cfg: tfhcl.Config{Directory: "testdata/nope"}, code: errors.CodeStoreReadError},
		{name: "no configuration files", cfg: tfhcl.Config{Directory: t.TempDir()}, code: errors.CodeStoreParseError},
		{name: "syntax error", cfg: tfhcl.Config{Directory: "testdata/broken"}, code: errors.CodeHCLParseError},
		{name: "duplicate address", cfg: tfhcl.Config{Directory: "testdata/dup"}, code: errors.CodeHCLParseError},
		{name: "missing var file", cfg: tfhcl.Config{Directory: "testdata/basic", VarFiles: []string{"nope.tfvars"}}, code: errors.CodeHCLEvalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadDir(t, tt.cfg)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestProvider_LoadLocalModules(t *testing.T) {
	snap, err := loadDir(t, tfhcl.Config{Directory: "testdata/modules"})
	require.NoError(t, err)

	ids := make([]string, 0, len(snap.Resources))
	for _, r := range snap.Resources {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{
		"aws_s3_bucket.assets",
		"module.network.aws_vpc.this",
		"module.network.module.flow_logs.aws_cloudwatch_log_group.flow",
	}, ids)

	vpc := byID(t, snap, "module.network.aws_vpc.this")
	assert.Equal(t, "network.this", vpc.Name)
	assert.Equal(t, "10.1.0.0/16", vpc.Arguments["cidr_block"], "known inputs override defaults")
	assert.Equal(t, map[string]string{"Name": "network"}, vpc.Arguments[domain.KeyTags], "unknown inputs fall back to defaults")

	logs := byID(t, snap, "module.network.module.flow_logs.aws_cloudwatch_log_group.flow")
	assert.Equal(t, "network.flow_logs.flow", logs.Name)
	assert.Equal(t, "eu-west-1", snap.Deployment.PrimaryRegion)
}

func TestProvider_LoadMissingModuleDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.tf"), []byte(`
module "gone" {
  source = "./gone"
}
`), 0o644))

	_, err := loadDir(t, tfhcl.Config{Directory: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module.gone")
}

func TestModuleDirs(t *testing.T) {
	dirs, err := tfhcl.ModuleDirs(context.Background(), "testdata/modules", log.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"testdata/modules",
		filepath.Join("testdata", "modules", "network"),
		filepath.Join("testdata", "modules", "network", "logs"),
	}, dirs)

	dirs, err = tfhcl.ModuleDirs(context.Background(), "testdata/basic", log.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"testdata/basic"}, dirs)
}
