package tfstate

import (
	"fmt"
	"strings"

	tfjson "github.com/hashicorp/terraform-json"

	"github.com/olusolaa/infra-board/internal/adapters/state/mapping"
	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/errors"
)

const managedMode = "managed"

// mapRawState converts every managed instance of a raw state file.
func mapRawState(state *State, b *mapping.SnapshotBuilder, logger ports.Logger) error {
	for i := range state.Resources {
		res := &state.Resources[i]
		if res.Mode != managedMode {
			continue
		}
		for j := range res.Instances {
			inst := &res.Instances[j]
			address := instanceAddress(res, inst)
			if err := b.Add(mapping.RawResource{
				Address:    address,
				Type:       res.Type,
				Name:       res.Name,
				Attributes: inst.Attributes,
			}); err != nil {
				return errors.Wrap(err, errors.CodeMappingError, fmt.Sprintf("mapping state resource %s", address))
			}
		}
		logger.Debugf(nil, "Mapped %d instance(s) of %s (provider %s)", len(res.Instances), resourceAddress(res), providerName(res.Provider))
	}
	return nil
}

// mapShowState converts `terraform show -json` output, walking child modules
// depth first after the root module's own resources.
func mapShowState(state *tfjson.State, b *mapping.SnapshotBuilder) error {
	if state.Values == nil || state.Values.RootModule == nil {
		return nil
	}
	return mapModule(state.Values.RootModule, b)
}

func mapModule(m *tfjson.StateModule, b *mapping.SnapshotBuilder) error {
	for _, res := range m.Resources {
		if res == nil || res.Mode != tfjson.ManagedResourceMode {
			continue
		}
		if err := b.Add(mapping.RawResource{
			Address:    res.Address,
			Type:       res.Type,
			Name:       res.Name,
			Attributes: res.AttributeValues,
		}); err != nil {
			return errors.Wrap(err, errors.CodeMappingError, fmt.Sprintf("mapping state resource %s", res.Address))
		}
	}
	for _, child := range m.ChildModules {
		if child == nil {
			continue
		}
		if err := mapModule(child, b); err != nil {
			return err
		}
	}
	return nil
}

func resourceAddress(r *Resource) string {
	if r.Module != "" {
		return r.Module + "." + r.Type + "." + r.Name
	}
	return r.Type + "." + r.Name
}

// instanceAddress renders the address the way Terraform prints it:
// aws_subnet.private[0] or aws_subnet.private["us-east-1a"].
func instanceAddress(r *Resource, inst *Instance) string {
	base := resourceAddress(r)
	switch key := inst.IndexKey.(type) {
	case nil:
		return base
	case string:
		return fmt.Sprintf("%s[%q]", base, key)
	case float64:
		return fmt.Sprintf("%s[%d]", base, int64(key))
	default:
		return fmt.Sprintf("%s[%v]", base, key)
	}
}

// providerName reduces a provider address to its short name:
// provider["registry.terraform.io/hashicorp/aws"] -> aws.
func providerName(addr string) string {
	addr = strings.TrimSuffix(strings.TrimPrefix(addr, `provider["`), `"]`)
	parts := strings.Split(addr, "/")
	return parts[len(parts)-1]
}
