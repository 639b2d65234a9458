package validation

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/pkg/convert"
)

const RuleIAMLeastPrivilege = "security-iam-least-privilege"

const adminPolicyName = "AdministratorAccess"

var policyJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// iamLeastPrivilege flags wildcard actions or resources in policy documents
// and roles carrying the AdministratorAccess managed policy. Documents may be
// decoded objects or the JSON strings jsonencode and state files produce.
func iamLeastPrivilege(snap *domain.Snapshot) []domain.Finding {
	var out []domain.Finding
	for _, r := range snap.Resources {
		var docs []any
		switch r.Type {
		case "aws_iam_role":
			v, _ := r.Argument(domain.KeyAssumeRolePolicy)
			docs = append(docs, v)
			raw, _ := r.Argument(domain.KeyInlinePolicy)
			if inline, err := convert.ToSliceOfMap(raw); err == nil {
				for _, p := range inline {
					docs = append(docs, p[domain.KeyPolicy])
				}
			}
		case "aws_iam_policy", "aws_iam_role_policy", "aws_iam_user_policy", "aws_iam_group_policy":
			v, _ := r.Argument(domain.KeyPolicy)
			docs = append(docs, v)
		default:
			continue
		}

		var wildAction, wildResource bool
		for _, doc := range docs {
			for _, stmt := range statements(doc) {
				wildAction = wildAction || hasWildcard(stmt["Action"], "*", "*:*")
				wildResource = wildResource || hasWildcard(stmt["Resource"], "*")
			}
		}
		if wildAction {
			out = append(out, newError(RuleIAMLeastPrivilege, r.ID,
				fmt.Sprintf("IAM policy on '%s' has wildcard actions (*:*)", r.Name)))
		}
		if wildResource {
			out = append(out, newError(RuleIAMLeastPrivilege, r.ID,
				fmt.Sprintf("IAM policy on '%s' has wildcard resources (*)", r.Name)))
		}

		managed, _ := r.Argument(domain.KeyManagedPolicies)
		arns, err := convert.ToSliceOfString(managed)
		if err != nil {
			continue
		}
		for _, arn := range arns {
			if strings.Contains(arn, adminPolicyName) {
				out = append(out, newError(RuleIAMLeastPrivilege, r.ID,
					fmt.Sprintf("IAM role '%s' has %s attached", r.Name, adminPolicyName)))
			}
		}
	}
	return out
}

// statements returns the Statement entries of a policy document. A single
// statement object is treated as a list of one.
func statements(doc any) []map[string]any {
	if s, ok := doc.(string); ok {
		if strings.TrimSpace(s) == "" || unresolved(s) {
			return nil
		}
		var decoded map[string]any
		if err := policyJSON.UnmarshalFromString(s, &decoded); err != nil {
			return nil
		}
		doc = decoded
	}
	block, ok := convert.ToBlock(doc)
	if !ok {
		return nil
	}
	raw := block["Statement"]
	if single, ok := raw.(map[string]any); ok {
		return []map[string]any{single}
	}
	stmts, err := convert.ToSliceOfMap(raw)
	if err != nil {
		return nil
	}
	return stmts
}

func hasWildcard(value any, wildcards ...string) bool {
	var values []string
	if s, ok := value.(string); ok {
		values = []string{s}
	} else if list, err := convert.ToSliceOfString(value); err == nil {
		values = list
	}
	for _, v := range values {
		for _, w := range wildcards {
			if v == w {
				return true
			}
		}
	}
	return false
}

// unresolved reports whether s is an interpolation left over from partial
// evaluation rather than a literal document.
func unresolved(s string) bool {
	return strings.HasPrefix(s, "${")
}
