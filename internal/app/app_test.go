package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/infra-board/internal/config"
	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/core/ports/mocks"
	"github.com/olusolaa/infra-board/internal/errors"
	"github.com/olusolaa/infra-board/internal/log"
)

const projectFixture = "../adapters/state/project/testdata/project.yaml"

func TestBuildApplicationFromViper_RunsProjectStore(t *testing.T) {
	v := config.NewViper()
	v.Set("store.type", "project")
	v.Set("store.path", projectFixture)
	v.Set("output.format", "json")

	var out, logs bytes.Buffer
	application, err := BuildApplicationFromViper(context.Background(), v, WithOutput(&out), WithLogOutput(&logs))
	require.NoError(t, err)
	require.NoError(t, application.Run(context.Background()))

	var report struct {
		Summary map[string]int `json:"summary"`
		Board   domain.Board   `json:"board"`
	}
	require.NoError(t, jsoniter.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 4, report.Summary["resources"])
	assert.Equal(t, []string{"us-east-1a", "us-east-1b", "us-east-1c"}, report.Board.Deployment.AvailabilityZones)
	assert.Equal(t, domain.StrategyPerAZ, report.Board.Cards["subnet_app"].Badge.Strategy)
	assert.Equal(t, "3×", report.Board.Cards["subnet_app"].Badge.Label)
}

func TestBuildApplicationFromViper_TextOutput(t *testing.T) {
	v := config.NewViper()
	v.Set("store.path", projectFixture)
	v.Set("output.text.no_color", true)

	var out bytes.Buffer
	application, err := BuildApplicationFromViper(context.Background(), v, WithOutput(&out), WithLogOutput(&bytes.Buffer{}))
	require.NoError(t, err)
	require.NoError(t, application.Run(context.Background()))

	assert.Contains(t, out.String(), "Infrastructure Board")
	assert.Contains(t, out.String(), "Environment: prod")
}

func TestBuildApplicationFromViper_InvalidConfig(t *testing.T) {
	v := config.NewViper()
	v.Set("store.type", "consul")

	_, err := BuildApplicationFromViper(context.Background(), v, WithLogOutput(&bytes.Buffer{}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConfigValidation))
	_, suggestion, ok := errors.GetUserFacingMessage(err)
	assert.True(t, ok)
	assert.NotEmpty(t, suggestion)
}

func TestBuildApplicationFromViper_UsesInjectedZones(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
domains:
  - {id: net, name: Net, category: networking, resource_ids: [subnet]}
resources:
  - id: subnet
    type: aws_subnet
    name: subnet
    domain_id: net
    deployment: {strategy: per-az}
`), 0o644))

	zones := mocks.NewZoneProvider(t)
	zones.On("Type").Return("static").Maybe()
	zones.On("AvailabilityZones", mock.Anything).Return([]string{"eu-west-1a", "eu-west-1b"}, nil)

	v := config.NewViper()
	v.Set("store.path", path)
	v.Set("output.format", "json")

	var out bytes.Buffer
	application, err := BuildApplicationFromViper(context.Background(), v,
		WithOutput(&out), WithLogOutput(&bytes.Buffer{}), WithZoneProvider(zones))
	require.NoError(t, err)
	require.NoError(t, application.Run(context.Background()))

	var report struct {
		Board domain.Board `json:"board"`
	}
	require.NoError(t, jsoniter.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, []string{"eu-west-1a", "eu-west-1b"}, report.Board.Deployment.AvailabilityZones)
	assert.Equal(t, "2×", report.Board.Cards["subnet"].Badge.Label)
}

func TestApplication_RunPropagatesEngineError(t *testing.T) {
	engine := mocks.NewBoardEngine(t)
	want := errors.New(errors.CodeStoreReadError, "boom")
	engine.On("Run", mock.Anything).Return(nil, false, want)

	application := NewApplication(engine, log.NewNop(), config.DefaultConfig())
	err := application.Run(context.Background())
	assert.ErrorIs(t, err, want)
}

func TestApplication_WatchRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resources: []\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Store.Path = path
	cfg.Watch.Debounce = 10 * time.Millisecond

	runs := make(chan struct{}, 10)
	engine := mocks.NewBoardEngine(t)
	engine.On("Run", mock.Anything).
		Return(&domain.Board{Cards: map[string]domain.Card{}}, true, nil).
		Run(func(mock.Arguments) {
			select {
			case runs <- struct{}{}:
			default:
			}
		})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	application := NewApplication(engine, log.NewNop(), cfg)
	go func() { done <- application.Watch(ctx) }()

	waitFor(t, runs)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("resources: []\ndomains: []\n"), 0o644))
	waitFor(t, runs)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestApplication_WatchMissingDirectory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Store.Path = filepath.Join(t.TempDir(), "missing", "board.yaml")

	application := NewApplication(mocks.NewBoardEngine(t), log.NewNop(), cfg)
	err := application.Watch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeWatchError))
}

func TestWatchTarget(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Store.Type = "tfhcl"
	cfg.Store.Path = "infra/"
	dirs, match := NewApplication(nil, log.NewNop(), cfg).watchTarget(context.Background())
	assert.Equal(t, []string{"infra"}, dirs, "unparseable directories still watch the root")
	assert.True(t, match("infra/main.tf"))
	assert.True(t, match("infra/queue.tf.json"))
	assert.True(t, match("infra/prod.tfvars"))
	assert.False(t, match("infra/.terraform.lock.hcl"))

	cfg.Store.Path = "../adapters/state/tfhcl/testdata/modules"
	dirs, _ = NewApplication(nil, log.NewNop(), cfg).watchTarget(context.Background())
	assert.Equal(t, []string{
		cfg.Store.Path,
		filepath.Join(cfg.Store.Path, "network"),
		filepath.Join(cfg.Store.Path, "network", "logs"),
	}, dirs)

	cfg.Store.Type = "tfstate"
	cfg.Store.Path = "state/terraform.tfstate"
	dirs, match = NewApplication(nil, log.NewNop(), cfg).watchTarget(context.Background())
	assert.Equal(t, []string{"state"}, dirs)
	assert.True(t, match("state/terraform.tfstate"))
	assert.False(t, match("state/terraform.tfstate.backup"))
}

func TestApplication_WatchRebuildsOnModuleChange(t *testing.T) {
	dir := t.TempDir()
	modDir := filepath.Join(dir, "modules", "queue")
	require.NoError(t, os.MkdirAll(modDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.tf"), []byte(`
module "queue" {
  source = "./modules/queue"
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(modDir, "main.tf"), []byte(`
resource "aws_sqs_queue" "jobs" {}
`), 0o644))

	cfg := config.DefaultConfig()
	cfg.Store.Type = "tfhcl"
	cfg.Store.Path = dir
	cfg.Watch.Debounce = 10 * time.Millisecond

	runs := make(chan struct{}, 10)
	engine := mocks.NewBoardEngine(t)
	engine.On("Run", mock.Anything).
		Return(&domain.Board{Cards: map[string]domain.Card{}}, true, nil).
		Run(func(mock.Arguments) {
			select {
			case runs <- struct{}{}:
			default:
			}
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- NewApplication(engine, log.NewNop(), cfg).Watch(ctx) }()

	waitFor(t, runs)
	require.NoError(t, os.WriteFile(filepath.Join(modDir, "main.tf"), []byte(`
resource "aws_sqs_queue" "jobs" {
  name = "jobs"
}
`), 0o644))
	waitFor(t, runs)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for engine run")
	}
}
