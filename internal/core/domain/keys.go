package domain

const (
	// Argument bag keys
	KeyTags             = "tags" // map[string]string or map[string]any
	KeyName             = "name"
	KeyID               = "id"
	KeyAvailabilityZone = "availability_zone"
	KeySubnetID         = "subnet_id"
	KeyRole             = "role"
	KeyIAMRoleARN       = "iam_role_arn"
	KeyVPCConfig        = "vpc_config"
	KeySubnetIDs        = "subnet_ids"
	KeySecurityGroupIDs = "security_group_ids"
	KeyIngress          = "ingress"
	KeyFromPort         = "from_port"
	KeyToPort           = "to_port"
	KeyCIDRBlocks       = "cidr_blocks"
	KeyAssumeRolePolicy = "assume_role_policy"
	KeyInlinePolicy     = "inline_policy"
	KeyPolicy           = "policy"
	KeyManagedPolicies  = "managed_policy_arns"

	// Tag keys
	TagEnvironment = "Environment"
	TagName        = "Name"
)
