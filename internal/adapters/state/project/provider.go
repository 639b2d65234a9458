// Package project loads board projects: YAML or JSON files that carry
// domains, resources and deployment settings explicitly.
package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/olusolaa/infra-board/internal/adapters/state/mapping"
	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/errors"
)

const ProviderTypeProject = "project"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	FilePath string `mapstructure:"path" validate:"required"`
}

type Provider struct {
	filePath string
	validate *validator.Validate
	logger   ports.Logger
}

func NewProvider(cfg Config, logger ports.Logger) (*Provider, error) {
	if cfg.FilePath == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			"project store requires a file path", "Set store.path to a .yaml, .yml or .json project file.")
	}
	return &Provider{
		filePath: cfg.FilePath,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger: logger.WithFields(map[string]any{
			"store":        ProviderTypeProject,
			"project_file": cfg.FilePath,
		}),
	}, nil
}

func (p *Provider) Type() string { return ProviderTypeProject }

func (p *Provider) Path() string { return p.filePath }

func (p *Provider) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(p.filePath)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeStoreReadError,
			fmt.Sprintf("cannot read project file %s", p.filePath), "Check store.path.")
	}

	doc, err := decodeDocument(p.filePath, raw)
	if err != nil {
		return nil, err
	}

	var file projectFile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &file,
		WeaklyTypedInput: false,
		ErrorUnused:      false,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create project decoder")
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeStoreInvalid,
			"project file has unexpected field types", "Compare the file against the documented project layout.")
	}

	if err := p.validate.StructCtx(ctx, &file); err != nil {
		return nil, validationError(err)
	}

	snap := file.toSnapshot(fmt.Sprintf("%s:%s", ProviderTypeProject, p.filePath))
	p.logger.Infof(ctx, "Loaded %d resources in %d domains from project", len(snap.Resources), len(snap.Domains))
	return snap, nil
}

// decodeDocument picks the decoder from the file extension.
func decodeDocument(path string, raw []byte) (map[string]any, error) {
	doc := make(map[string]any)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodeStoreParseError, "invalid YAML in project file", "")
		}
	case ".json":
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodeStoreParseError, "invalid JSON in project file", "")
		}
	default:
		return nil, errors.NewUserFacing(errors.CodeUnsupportedFormat,
			fmt.Sprintf("unsupported project file extension %q", ext), "Use a .yaml, .yml or .json file.")
	}
	return doc, nil
}

func validationError(err error) error {
	var details strings.Builder
	details.WriteString("Project validation failed:")
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	} else {
		details.WriteString(" " + err.Error())
	}
	return errors.NewUserFacing(errors.CodeStoreInvalid, details.String(), "Fix the listed fields in the project file.")
}

func normalize(args map[string]any) map[string]any {
	if args == nil {
		return map[string]any{}
	}
	return mapping.NormalizeArguments(args)
}
