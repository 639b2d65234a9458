package tfhcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/olusolaa/infra-board/internal/adapters/state/tfhcl/evaluator"
	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/errors"
)

func isConfigFile(name string) bool {
	return strings.HasSuffix(name, ".tf") || strings.HasSuffix(name, ".tf.json")
}

// parseDirectory parses every .tf and .tf.json file directly inside dirPath,
// in directory order, and decodes the module declarations.
func parseDirectory(ctx context.Context, dirPath string, logger ports.Logger) (*evaluator.Module, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeStoreReadError,
			fmt.Sprintf("failed to read HCL directory: %s", dirPath),
			"Check that store.path points to a Terraform configuration directory.")
	}

	parser := hclparse.NewParser()
	var files []*hcl.File
	var names []string
	var diags hcl.Diagnostics

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !isConfigFile(entry.Name()) {
			continue
		}
		filePath := filepath.Join(dirPath, entry.Name())
		logger.Debugf(ctx, "Parsing file %s", entry.Name())

		var file *hcl.File
		var fileDiags hcl.Diagnostics
		if strings.HasSuffix(filePath, ".tf.json") {
			file, fileDiags = parser.ParseJSONFile(filePath)
		} else {
			file, fileDiags = parser.ParseHCLFile(filePath)
		}
		diags = append(diags, fileDiags...)
		if file != nil {
			files = append(files, file)
			names = append(names, filePath)
		}
	}

	if len(names) == 0 && !diags.HasErrors() {
		return nil, errors.NewUserFacing(errors.CodeStoreParseError,
			fmt.Sprintf("no HCL files (.tf, .tf.json) found in directory: %s", dirPath), "")
	}
	if evaluator.DiagsHasFatalErrors(diags) {
		return nil, errors.Wrap(&evaluator.DiagnosticsError{Operation: "parsing", Path: dirPath, Diags: diags},
			errors.CodeHCLParseError, "fatal errors encountered during HCL parsing")
	}

	mod, modDiags := evaluator.DecodeModule(dirPath, files, names)
	if evaluator.DiagsHasFatalErrors(modDiags) {
		return nil, errors.Wrap(&evaluator.DiagnosticsError{Operation: "decoding", Path: dirPath, Diags: modDiags},
			errors.CodeHCLParseError, "invalid module declarations")
	}
	for _, d := range modDiags {
		logger.Warnf(ctx, "%s", d.Error())
	}
	logger.Debugf(ctx, "Parsed %d HCL file(s) with %d resource block(s)", len(files), len(mod.Resources))
	return mod, nil
}
