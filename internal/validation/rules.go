package validation

import (
	"fmt"
	"strings"

	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/pkg/convert"
)

const (
	RuleOrphanResource   = "graph-orphan-resource"
	RuleDuplicateName    = "graph-duplicate-name"
	RuleEC2Subnet        = "aws-ec2-subnet"
	RuleLambdaIAMRole    = "aws-lambda-iam-role"
	RuleLambdaVPC        = "aws-lambda-vpc"
	RuleIAMRoleUsage     = "aws-iam-role-usage"
	RuleAdminPortsOpen   = "security-admin-ports-open"
	RulePerAZWithoutZone = "deployment-per-az-zones"
)

const openCIDR = "0.0.0.0/0"

var adminPorts = []int{22, 3389}

// DefaultRules returns the built-in rule set in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		RuleFunc{RuleOrphanResource, orphanResources},
		RuleFunc{RuleDuplicateName, duplicateNames},
		RuleFunc{RuleEC2Subnet, ec2Subnet},
		RuleFunc{RuleLambdaIAMRole, lambdaIAMRole},
		RuleFunc{RuleLambdaVPC, lambdaVPC},
		RuleFunc{RuleAdminPortsOpen, adminPortsOpen},
		RuleFunc{RuleIAMLeastPrivilege, iamLeastPrivilege},
		RuleFunc{RuleIAMRoleUsage, iamRoleUsage},
		RuleFunc{RulePerAZWithoutZone, perAZWithoutZones},
	}
}

func orphanResources(snap *domain.Snapshot) []domain.Finding {
	known := make(map[string]struct{}, len(snap.Domains))
	for _, d := range snap.Domains {
		known[d.ID] = struct{}{}
	}
	var out []domain.Finding
	for _, r := range snap.Resources {
		if _, ok := known[r.DomainID]; !ok {
			out = append(out, newError(RuleOrphanResource, r.ID,
				fmt.Sprintf("Resource '%s' belongs to non-existent domain: %s", r.Name, r.DomainID)))
		}
	}
	return out
}

func duplicateNames(snap *domain.Snapshot) []domain.Finding {
	var out []domain.Finding

	domainNames := make(map[string]string, len(snap.Domains))
	for _, d := range snap.Domains {
		if d.Name == "" {
			continue
		}
		if other, dup := domainNames[d.Name]; dup {
			out = append(out, newError(RuleDuplicateName, d.ID,
				fmt.Sprintf("Duplicate domain name: '%s' (conflicts with %s)", d.Name, other)))
			continue
		}
		domainNames[d.Name] = d.ID
	}

	byID := make(map[string]domain.Resource, len(snap.Resources))
	for _, r := range snap.Resources {
		if _, exists := byID[r.ID]; !exists {
			byID[r.ID] = r
		}
	}
	for _, d := range snap.Domains {
		seen := make(map[string]struct{}, len(d.ResourceIDs))
		for _, id := range d.ResourceIDs {
			r, ok := byID[id]
			if !ok || r.Name == "" {
				continue
			}
			if _, dup := seen[r.Name]; dup {
				out = append(out, newError(RuleDuplicateName, r.ID,
					fmt.Sprintf("Duplicate resource name in domain '%s': '%s'", domainLabel(d), r.Name)))
				continue
			}
			seen[r.Name] = struct{}{}
		}
	}
	return out
}

func domainLabel(d domain.Domain) string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

func ec2Subnet(snap *domain.Snapshot) []domain.Finding {
	var out []domain.Finding
	for _, r := range ofType(snap, "aws_instance") {
		if v, _ := r.Argument(domain.KeySubnetID); convert.IsEmpty(v) {
			out = append(out, newError(RuleEC2Subnet, r.ID,
				fmt.Sprintf("EC2 instance '%s' must specify subnet_id", r.Name)))
		}
	}
	return out
}

func lambdaIAMRole(snap *domain.Snapshot) []domain.Finding {
	var out []domain.Finding
	for _, r := range ofType(snap, "aws_lambda_function") {
		if v, _ := r.Argument(domain.KeyRole); convert.IsEmpty(v) {
			out = append(out, newError(RuleLambdaIAMRole, r.ID,
				fmt.Sprintf("Lambda function '%s' must have IAM role", r.Name)))
		}
	}
	return out
}

func lambdaVPC(snap *domain.Snapshot) []domain.Finding {
	var out []domain.Finding
	for _, r := range ofType(snap, "aws_lambda_function") {
		raw, _ := r.Argument(domain.KeyVPCConfig)
		vpc, ok := convert.ToBlock(raw)
		if !ok {
			continue
		}
		if convert.IsEmpty(vpc[domain.KeySubnetIDs]) {
			out = append(out, newError(RuleLambdaVPC, r.ID,
				fmt.Sprintf("Lambda '%s' VPC config missing subnet_ids", r.Name)))
		}
		if convert.IsEmpty(vpc[domain.KeySecurityGroupIDs]) {
			out = append(out, newError(RuleLambdaVPC, r.ID,
				fmt.Sprintf("Lambda '%s' VPC config missing security_group_ids", r.Name)))
		}
	}
	return out
}

func adminPortsOpen(snap *domain.Snapshot) []domain.Finding {
	var out []domain.Finding
	for _, r := range ofType(snap, "aws_security_group") {
		raw, _ := r.Argument(domain.KeyIngress)
		ingress, err := convert.ToSliceOfMap(raw)
		if err != nil {
			continue
		}
		for _, rule := range ingress {
			from, okFrom := convert.ToInt(rule[domain.KeyFromPort])
			to, okTo := convert.ToInt(rule[domain.KeyToPort])
			if !okFrom || !okTo {
				continue
			}
			cidrs, err := convert.ToSliceOfString(rule[domain.KeyCIDRBlocks])
			if err != nil || !contains(cidrs, openCIDR) {
				continue
			}
			for _, port := range adminPorts {
				if from <= port && port <= to {
					out = append(out, newError(RuleAdminPortsOpen, r.ID,
						fmt.Sprintf("Security group '%s' allows port %d from %s", r.Name, port, openCIDR)))
				}
			}
		}
	}
	return out
}

// iamRoleUsage flags roles that no resource points at through role or
// iam_role_arn. A reference matches a role by address, id or name.
func iamRoleUsage(snap *domain.Snapshot) []domain.Finding {
	roles := ofType(snap, "aws_iam_role")
	if len(roles) == 0 {
		return nil
	}

	var refs []string
	for _, r := range snap.Resources {
		for _, key := range []string{domain.KeyRole, domain.KeyIAMRoleARN} {
			if v, ok := r.Argument(key); ok {
				if s, isStr := v.(string); isStr && s != "" {
					refs = append(refs, s)
				}
			}
		}
	}

	var out []domain.Finding
	for _, role := range roles {
		if !referenced(role, refs) {
			out = append(out, newWarning(RuleIAMRoleUsage, role.ID,
				fmt.Sprintf("IAM role '%s' is not referenced by any resource", role.Name)))
		}
	}
	return out
}

func referenced(role domain.Resource, refs []string) bool {
	for _, ref := range refs {
		if ref == role.ID || strings.Contains(ref, role.Type+"."+role.Name) {
			return true
		}
		if role.Name != "" && strings.HasSuffix(ref, "/"+role.Name) {
			return true
		}
	}
	return false
}

func perAZWithoutZones(snap *domain.Snapshot) []domain.Finding {
	if len(snap.Deployment.AvailabilityZones) > 0 {
		return nil
	}
	var out []domain.Finding
	for _, r := range snap.Resources {
		if r.Deployment != nil && r.Deployment.Strategy == domain.StrategyPerAZ {
			out = append(out, newWarning(RulePerAZWithoutZone, r.ID,
				fmt.Sprintf("Resource '%s' is deployed per-az but no availability zones are configured", r.Name)))
		}
	}
	return out
}

func ofType(snap *domain.Snapshot, resourceType string) []domain.Resource {
	var out []domain.Resource
	for _, r := range snap.Resources {
		if r.Type == resourceType {
			out = append(out, r)
		}
	}
	return out
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
