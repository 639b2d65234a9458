// Package taxonomy maps resource types to a display category and icon key.
package taxonomy

import (
	"sort"
	"strings"

	"github.com/olusolaa/infra-board/internal/core/domain"
)

// ProviderPrefix is stripped from a resource type before lookup.
const ProviderPrefix = "aws_"

type IconKey string

const (
	IconNetwork    IconKey = "network"
	IconGateway    IconKey = "gateway"
	IconShield     IconKey = "shield"
	IconServer     IconKey = "server"
	IconScaling    IconKey = "scaling"
	IconContainer  IconKey = "container"
	IconFunction   IconKey = "function"
	IconAPI        IconKey = "api"
	IconDatabase   IconKey = "database"
	IconTable      IconKey = "table"
	IconCache      IconKey = "cache"
	IconBucket     IconKey = "bucket"
	IconDisk       IconKey = "disk"
	IconFiles      IconKey = "files"
	IconQueue      IconKey = "queue"
	IconTopic      IconKey = "topic"
	IconStream     IconKey = "stream"
	IconEvent      IconKey = "event"
	IconUser       IconKey = "user"
	IconCredential IconKey = "key"
	IconLock       IconKey = "lock"
	IconChart      IconKey = "chart"
	IconLog        IconKey = "log"
	IconAlarm      IconKey = "alarm"
	IconGlobe      IconKey = "globe"
	IconBalancer   IconKey = "balancer"
	IconDNS        IconKey = "dns"
	IconBox        IconKey = "box"
)

// Fallbacks for types absent from the table.
const (
	FallbackCategory = domain.CategoryUncategorized
	FallbackIcon     = IconBox
)

type Entry struct {
	Category domain.Category
	Icon     IconKey
}

// table is keyed by the resource type with ProviderPrefix removed.
var table = map[string]Entry{
	// networking
	"vpc":                     {domain.CategoryNetworking, IconNetwork},
	"subnet":                  {domain.CategoryNetworking, IconNetwork},
	"internet_gateway":        {domain.CategoryNetworking, IconGateway},
	"nat_gateway":             {domain.CategoryNetworking, IconGateway},
	"eip":                     {domain.CategoryNetworking, IconGateway},
	"route_table":             {domain.CategoryNetworking, IconNetwork},
	"route_table_association": {domain.CategoryNetworking, IconNetwork},
	"route":                   {domain.CategoryNetworking, IconNetwork},
	"security_group":          {domain.CategoryNetworking, IconShield},
	"security_group_rule":     {domain.CategoryNetworking, IconShield},
	"network_acl":             {domain.CategoryNetworking, IconShield},
	"vpc_endpoint":            {domain.CategoryNetworking, IconGateway},
	"vpc_peering_connection":  {domain.CategoryNetworking, IconNetwork},
	"ec2_transit_gateway":     {domain.CategoryNetworking, IconGateway},

	// compute
	"instance":            {domain.CategoryCompute, IconServer},
	"launch_template":     {domain.CategoryCompute, IconServer},
	"autoscaling_group":   {domain.CategoryCompute, IconScaling},
	"ecs_cluster":         {domain.CategoryCompute, IconContainer},
	"ecs_service":         {domain.CategoryCompute, IconContainer},
	"ecs_task_definition": {domain.CategoryCompute, IconContainer},
	"eks_cluster":         {domain.CategoryCompute, IconContainer},
	"eks_node_group":      {domain.CategoryCompute, IconContainer},
	"ebs_volume":          {domain.CategoryCompute, IconDisk},

	// serverless
	"lambda_function":             {domain.CategoryServerless, IconFunction},
	"lambda_permission":           {domain.CategoryServerless, IconFunction},
	"lambda_event_source_mapping": {domain.CategoryServerless, IconEvent},
	"api_gateway_rest_api":        {domain.CategoryServerless, IconAPI},
	"apigatewayv2_api":            {domain.CategoryServerless, IconAPI},
	"sfn_state_machine":           {domain.CategoryServerless, IconFunction},

	// data
	"db_instance":                   {domain.CategoryData, IconDatabase},
	"db_subnet_group":               {domain.CategoryData, IconDatabase},
	"rds_cluster":                   {domain.CategoryData, IconDatabase},
	"rds_cluster_instance":          {domain.CategoryData, IconDatabase},
	"dynamodb_table":                {domain.CategoryData, IconTable},
	"elasticache_cluster":           {domain.CategoryData, IconCache},
	"elasticache_replication_group": {domain.CategoryData, IconCache},
	"redshift_cluster":              {domain.CategoryData, IconDatabase},

	// storage
	"s3_bucket":            {domain.CategoryStorage, IconBucket},
	"s3_bucket_policy":     {domain.CategoryStorage, IconBucket},
	"s3_bucket_versioning": {domain.CategoryStorage, IconBucket},
	"efs_file_system":      {domain.CategoryStorage, IconFiles},
	"ecr_repository":       {domain.CategoryStorage, IconContainer},

	// messaging
	"sqs_queue":               {domain.CategoryMessaging, IconQueue},
	"sns_topic":               {domain.CategoryMessaging, IconTopic},
	"sns_topic_subscription":  {domain.CategoryMessaging, IconTopic},
	"kinesis_stream":          {domain.CategoryMessaging, IconStream},
	"cloudwatch_event_rule":   {domain.CategoryMessaging, IconEvent},
	"cloudwatch_event_target": {domain.CategoryMessaging, IconEvent},

	// identity
	"iam_role":                   {domain.CategoryIdentity, IconUser},
	"iam_policy":                 {domain.CategoryIdentity, IconCredential},
	"iam_role_policy":            {domain.CategoryIdentity, IconCredential},
	"iam_role_policy_attachment": {domain.CategoryIdentity, IconCredential},
	"iam_user":                   {domain.CategoryIdentity, IconUser},
	"iam_instance_profile":       {domain.CategoryIdentity, IconUser},
	"kms_key":                    {domain.CategoryIdentity, IconLock},
	"secretsmanager_secret":      {domain.CategoryIdentity, IconLock},

	// observability
	"cloudwatch_log_group":    {domain.CategoryObservability, IconLog},
	"cloudwatch_metric_alarm": {domain.CategoryObservability, IconAlarm},
	"cloudwatch_dashboard":    {domain.CategoryObservability, IconChart},
	"cloudtrail":              {domain.CategoryObservability, IconLog},

	// edge
	"lb":                      {domain.CategoryEdge, IconBalancer},
	"alb":                     {domain.CategoryEdge, IconBalancer},
	"lb_listener":             {domain.CategoryEdge, IconBalancer},
	"lb_target_group":         {domain.CategoryEdge, IconBalancer},
	"cloudfront_distribution": {domain.CategoryEdge, IconGlobe},
	"route53_zone":            {domain.CategoryEdge, IconDNS},
	"route53_record":          {domain.CategoryEdge, IconDNS},
	"acm_certificate":         {domain.CategoryEdge, IconLock},
	"wafv2_web_acl":           {domain.CategoryEdge, IconShield},
}

func key(resourceType string) string {
	return strings.TrimPrefix(resourceType, ProviderPrefix)
}

// Lookup reports the table entry for resourceType. Matching is exact and
// case-sensitive after the provider prefix is removed.
func Lookup(resourceType string) (Entry, bool) {
	e, ok := table[key(resourceType)]
	return e, ok
}

// CategoryOf never fails; unknown types map to FallbackCategory.
func CategoryOf(resourceType string) domain.Category {
	if e, ok := Lookup(resourceType); ok {
		return e.Category
	}
	return FallbackCategory
}

// IconKeyOf never fails; unknown types map to FallbackIcon.
func IconKeyOf(resourceType string) IconKey {
	if e, ok := Lookup(resourceType); ok {
		return e.Icon
	}
	return FallbackIcon
}

// KnownTypes returns the prefixed resource types in the table, sorted.
func KnownTypes() []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, ProviderPrefix+k)
	}
	sort.Strings(out)
	return out
}
