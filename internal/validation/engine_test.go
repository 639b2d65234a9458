package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/core/ports/mocks"
	apperrors "github.com/olusolaa/infra-board/internal/errors"
	"github.com/olusolaa/infra-board/internal/log"
)

func snapshotFixture() *domain.Snapshot {
	return &domain.Snapshot{
		Deployment: domain.DeploymentConfig{AvailabilityZones: []string{"us-east-1a"}},
		Domains: []domain.Domain{
			{ID: "net", Name: "network", Category: domain.CategoryNetworking, ResourceIDs: []string{"sg"}},
			{ID: "app", Name: "application", Category: domain.CategoryServerless, ResourceIDs: []string{"fn", "role"}},
		},
		Resources: []domain.Resource{
			{ID: "sg", Type: "aws_security_group", Name: "web", DomainID: "net", Arguments: map[string]any{
				"ingress": []any{map[string]any{"from_port": 443, "to_port": 443, "cidr_blocks": []any{"0.0.0.0/0"}}},
			}},
			{ID: "fn", Type: "aws_lambda_function", Name: "handler", DomainID: "app", Arguments: map[string]any{
				"role": "${aws_iam_role.exec.arn}",
			}},
			{ID: "role", Type: "aws_iam_role", Name: "exec", DomainID: "app"},
		},
	}
}

func TestEngine_CleanSnapshot(t *testing.T) {
	snap := snapshotFixture()

	results := NewDefaultEngine(log.NewNop()).Validate(context.Background(), snap)

	assert.Empty(t, results.Findings())
	for _, id := range []string{"net", "app", "sg", "fn", "role"} {
		state, ok := results.ValidationState(id)
		require.True(t, ok, id)
		assert.True(t, state.IsValid, id)
		assert.Equal(t, domain.DisplayOk, DisplayStateFor(results, id))
	}
	_, ok := results.ValidationState("nope")
	assert.False(t, ok)
}

func TestEngine_DefaultRules(t *testing.T) {
	snap := snapshotFixture()
	snap.Deployment.AvailabilityZones = nil
	snap.Resources = append(snap.Resources,
		domain.Resource{ID: "orphan", Type: "aws_s3_bucket", Name: "logs", DomainID: "missing"},
		domain.Resource{ID: "vm", Type: "aws_instance", Name: "bastion", DomainID: "net"},
		domain.Resource{ID: "fn2", Type: "aws_lambda_function", Name: "worker", DomainID: "app", Arguments: map[string]any{
			"vpc_config": []any{map[string]any{"subnet_ids": []any{"subnet-1"}}},
		}},
		domain.Resource{ID: "ssh", Type: "aws_security_group", Name: "ssh", DomainID: "net", Arguments: map[string]any{
			"ingress": []any{map[string]any{"from_port": float64(0), "to_port": float64(65535), "cidr_blocks": []any{"0.0.0.0/0"}}},
		}},
		domain.Resource{ID: "unused", Type: "aws_iam_role", Name: "unused", DomainID: "app"},
		domain.Resource{ID: "nat", Type: "aws_nat_gateway", Name: "nat", DomainID: "net",
			Deployment: &domain.DeploymentDescriptor{Strategy: domain.StrategyPerAZ}},
		domain.Resource{ID: "dup", Type: "aws_security_group", Name: "web", DomainID: "net"},
	)
	snap.Domains[0].ResourceIDs = append(snap.Domains[0].ResourceIDs, "vm", "ssh", "nat", "dup")
	snap.Domains = append(snap.Domains, domain.Domain{ID: "net2", Name: "network", Category: domain.CategoryNetworking})

	results := NewDefaultEngine(log.NewNop()).Validate(context.Background(), snap)

	byRule := map[string][]string{}
	for _, f := range results.Findings() {
		byRule[f.RuleID] = append(byRule[f.RuleID], f.ElementID)
	}
	assert.Equal(t, []string{"orphan"}, byRule[RuleOrphanResource])
	assert.ElementsMatch(t, []string{"net2", "dup"}, byRule[RuleDuplicateName])
	assert.Equal(t, []string{"vm"}, byRule[RuleEC2Subnet])
	assert.Equal(t, []string{"fn2"}, byRule[RuleLambdaIAMRole])
	assert.Equal(t, []string{"fn2"}, byRule[RuleLambdaVPC])
	assert.Equal(t, []string{"ssh", "ssh"}, byRule[RuleAdminPortsOpen])
	assert.Equal(t, []string{"unused"}, byRule[RuleIAMRoleUsage])
	assert.Equal(t, []string{"nat"}, byRule[RulePerAZWithoutZone])

	nat, ok := results.ValidationState("nat")
	require.True(t, ok)
	assert.True(t, nat.IsValid)
	assert.Len(t, nat.Warnings, 1)
	assert.Equal(t, domain.DisplayWarning, DisplayStateFor(results, "nat"))
	assert.Equal(t, domain.DisplayError, DisplayStateFor(results, "orphan"))
	assert.Equal(t, domain.DisplayWarning, DisplayStateFor(results, "unused"))
	assert.Equal(t, domain.DisplayOk, DisplayStateFor(results, "role"))

	assert.Equal(t, 8, results.ErrorCount())
	assert.Equal(t, 2, results.WarningCount())
}

func TestEngine_PanickingRuleIsSkipped(t *testing.T) {
	logger := mocks.NewLogger(t)
	logger.On("WithFields", mock.Anything).Return(logger)
	logger.On("Debugf", mock.Anything, mock.Anything, mock.Anything).Maybe()
	logger.On("Errorf", mock.Anything, mock.MatchedBy(func(err error) bool {
		return apperrors.Is(err, apperrors.CodeValidationRuleError)
	}), "Rule %s failed", mock.Anything).Once()

	engine := NewEngine(logger)
	engine.Register(RuleFunc{RuleID: "explodes", Fn: func(*domain.Snapshot) []domain.Finding {
		panic("boom")
	}})
	engine.Register(RuleFunc{RuleID: "always-warns", Fn: func(s *domain.Snapshot) []domain.Finding {
		return []domain.Finding{newWarning("always-warns", "sg", "heads up")}
	}})

	results := engine.Validate(context.Background(), snapshotFixture())

	require.Len(t, results.Findings(), 1)
	assert.Equal(t, "always-warns", results.Findings()[0].RuleID)
}

func TestEngine_NilSnapshot(t *testing.T) {
	results := NewDefaultEngine(log.NewNop()).Validate(context.Background(), nil)
	assert.Empty(t, results.Findings())
	assert.Equal(t, domain.DisplayNeutral, DisplayStateFor(results, "anything"))
}

func TestResults_StatesAreCopies(t *testing.T) {
	snap := snapshotFixture()
	snap.Resources = append(snap.Resources, domain.Resource{ID: "vm", Type: "aws_instance", DomainID: "net"})
	results := NewDefaultEngine(log.NewNop()).Validate(context.Background(), snap)

	state, ok := results.ValidationState("vm")
	require.True(t, ok)
	state.Errors[0] = "tampered"

	again, _ := results.ValidationState("vm")
	assert.NotEqual(t, "tampered", again.Errors[0])
}
