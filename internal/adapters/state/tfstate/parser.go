package tfstate

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	tfjson "github.com/hashicorp/terraform-json"
	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type (
	// State is the raw state file layout (version 3 and later).
	State struct {
		Version          int        `json:"version"`
		TerraformVersion string     `json:"terraform_version"`
		Serial           int        `json:"serial"`
		Lineage          string     `json:"lineage"`
		Resources        []Resource `json:"resources"`
	}

	Resource struct {
		Module    string     `json:"module,omitempty"`
		Mode      string     `json:"mode"`
		Type      string     `json:"type"`
		Name      string     `json:"name"`
		Provider  string     `json:"provider"`
		Instances []Instance `json:"instances"`
	}

	Instance struct {
		IndexKey      any            `json:"index_key,omitempty"`
		SchemaVersion int            `json:"schema_version"`
		Attributes    map[string]any `json:"attributes"`
		Dependencies  []string       `json:"dependencies"`
	}
)

// parsedState holds exactly one of the two supported layouts.
type parsedState struct {
	raw  *State
	show *tfjson.State
}

type formatProbe struct {
	Version       int    `json:"version"`
	FormatVersion string `json:"format_version"`
}

// stateParser caches the parsed file until its size or modification time
// changes.
type stateParser struct {
	filePath string
	logger   ports.Logger

	mutex   sync.RWMutex
	cache   *parsedState
	modTime time.Time
	size    int64
}

func newStateParser(path string, logger ports.Logger) *stateParser {
	return &stateParser{
		filePath: path,
		logger:   logger.WithFields(map[string]any{"component": "tfstate_parser"}),
	}
}

func (sp *stateParser) parseAndCache(ctx context.Context) (*parsedState, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	info, err := os.Stat(sp.filePath)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeStoreReadError,
			fmt.Sprintf("cannot access state file %s", sp.filePath),
			"Check the store path or run 'terraform state pull' to produce a local copy.")
	}

	sp.mutex.RLock()
	if sp.fresh(info) {
		defer sp.mutex.RUnlock()
		return sp.cache, nil
	}
	sp.mutex.RUnlock()

	sp.mutex.Lock()
	defer sp.mutex.Unlock()
	if sp.fresh(info) {
		return sp.cache, nil
	}

	raw, err := os.ReadFile(sp.filePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStoreReadError, "failed to read state file")
	}
	parsed, err := parseState(raw)
	if err != nil {
		return nil, err
	}

	sp.cache = parsed
	sp.modTime = info.ModTime()
	sp.size = info.Size()
	sp.logger.Debugf(ctx, "Parsed state file (%d bytes)", len(raw))
	return parsed, nil
}

func (sp *stateParser) fresh(info os.FileInfo) bool {
	return sp.cache != nil && sp.modTime.Equal(info.ModTime()) && sp.size == info.Size()
}

// parseState accepts either a raw state file or `terraform show -json`
// output, told apart by the format_version key.
func parseState(raw []byte) (*parsedState, error) {
	if len(raw) == 0 {
		return nil, errors.NewUserFacing(errors.CodeStoreParseError, "state file is empty", "")
	}

	var probe formatProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeStoreParseError, "invalid JSON in state", "")
	}

	if probe.FormatVersion != "" {
		var show tfjson.State
		if err := show.UnmarshalJSON(raw); err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodeStoreParseError,
				"invalid 'terraform show -json' output", "Regenerate it with 'terraform show -json > state.json'.")
		}
		return &parsedState{show: &show}, nil
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeStoreParseError, "invalid JSON in state", "")
	}
	if state.Version < 3 {
		return nil, errors.NewUserFacing(
			errors.CodeUnsupportedFormat,
			fmt.Sprintf("unsupported state version %d (version 3 or later required)", state.Version),
			"Upgrade Terraform and regenerate the state.")
	}
	return &parsedState{raw: &state}, nil
}
