package parser

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ruby4mag/servicemap-go-backend/internal/models"
)

var serviceIDPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

const serviceIDMessage = "Service ID must be lowercase alphanumeric with hyphens, e.g. 'auth-service'"

// IsServiceID reports whether s is a valid service slug: 1-64 chars,
// lowercase alphanumeric with interior hyphens, alphanumeric at both ends.
func IsServiceID(s string) bool {
	return len(s) <= 64 && serviceIDPattern.MatchString(s)
}

// errorList collects dotted-path error strings in encounter order.
type errorList struct {
	errs []string
}

func (e *errorList) add(path, msg string) {
	if path == "" {
		e.errs = append(e.errs, msg)
		return
	}
	e.errs = append(e.errs, path+": "+msg)
}

func validateDocument(root map[string]interface{}) (*Document, []string) {
	e := &errorList{}
	doc := &Document{
		Services:    []ServiceDefinition{},
		Connections: []ConnectionDefinition{},
	}

	switch services := root["services"].(type) {
	case nil:
		e.add("services", "Required")
	case []interface{}:
		for i, item := range services {
			doc.Services = append(doc.Services, validateService(item, fmt.Sprintf("services.%d", i), e))
		}
	default:
		e.add("services", "Expected a list")
	}

	switch connections := root["connections"].(type) {
	case nil:
		// Optional, defaults to empty.
	case []interface{}:
		for i, item := range connections {
			doc.Connections = append(doc.Connections, validateConnection(item, fmt.Sprintf("connections.%d", i), e))
		}
	default:
		e.add("connections", "Expected a list")
	}

	return doc, e.errs
}

func validateService(item interface{}, path string, e *errorList) ServiceDefinition {
	svc := ServiceDefinition{
		Tier: models.DefaultTier,
		Type: models.DefaultServiceType,
	}

	obj, ok := item.(map[string]interface{})
	if !ok {
		e.add(path, "Expected an object")
		return svc
	}

	if id, ok := reqString(obj, "id", path, e); ok {
		if !IsServiceID(id) {
			e.add(path+".id", serviceIDMessage)
		}
		svc.ID = id
	}

	if name, ok := reqString(obj, "name", path, e); ok {
		if name == "" {
			e.add(path+".name", "Must not be empty")
		} else if len(name) > 128 {
			e.add(path+".name", "Must be at most 128 characters")
		}
		svc.Name = name
	}

	svc.Description = optString(obj, "description", path, 1024, e)
	svc.Owner = optString(obj, "owner", path, 128, e)
	svc.Tier = enumOrDefault(obj, "tier", path, models.Criticalities, models.DefaultTier, e)
	svc.Type = enumOrDefault(obj, "type", path, models.ServiceTypes, models.DefaultServiceType, e)
	svc.Repository = optURL(obj, "repository", path, e)
	svc.Documentation = optURL(obj, "documentation", path, e)
	svc.Tags = optTags(obj, path, e)
	svc.Metadata = optMetadata(obj, path, e)

	return svc
}

func validateConnection(item interface{}, path string, e *errorList) ConnectionDefinition {
	conn := ConnectionDefinition{
		Protocol:    models.DefaultProtocol,
		Criticality: models.DefaultCriticality,
	}

	obj, ok := item.(map[string]interface{})
	if !ok {
		e.add(path, "Expected an object")
		return conn
	}

	if source, ok := reqString(obj, "source", path, e); ok {
		if !IsServiceID(source) {
			e.add(path+".source", serviceIDMessage)
		}
		conn.Source = source
	}

	if target, ok := reqString(obj, "target", path, e); ok {
		if !IsServiceID(target) {
			e.add(path+".target", serviceIDMessage)
		}
		conn.Target = target
	}

	conn.Label = optString(obj, "label", path, 128, e)
	conn.Protocol = enumOrDefault(obj, "protocol", path, models.Protocols, models.DefaultProtocol, e)
	conn.Port = optPort(obj, path, e)
	conn.Description = optString(obj, "description", path, 1024, e)
	conn.Criticality = enumOrDefault(obj, "criticality", path, models.Criticalities, models.DefaultCriticality, e)

	if sla := optNumber(obj, "sla_target_ms", path, e); sla != nil {
		if *sla <= 0 {
			e.add(path+".sla_target_ms", "Must be greater than 0")
		} else {
			conn.SlaTargetMs = sla
		}
	}

	if uptime := optNumber(obj, "sla_uptime_percent", path, e); uptime != nil {
		if *uptime < 0 || *uptime > 100 {
			e.add(path+".sla_uptime_percent", "Must be between 0 and 100")
		} else {
			conn.SlaUptimePercent = uptime
		}
	}

	if method := optString(obj, "auth_method", path, 0, e); method != nil {
		if !models.IsAuthMethod(*method) {
			e.add(path+".auth_method", enumMessage(models.AuthMethods))
		} else {
			conn.AuthMethod = method
		}
	}

	conn.IsAsync = optBool(obj, "is_async", path, e)
	conn.Metadata = optMetadata(obj, path, e)

	return conn
}

func reqString(obj map[string]interface{}, key, path string, e *errorList) (string, bool) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		e.add(path+"."+key, "Required")
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		e.add(path+"."+key, "Expected a string")
		return "", false
	}
	return s, true
}

func optString(obj map[string]interface{}, key, path string, maxLen int, e *errorList) *string {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		e.add(path+"."+key, "Expected a string")
		return nil
	}
	if maxLen > 0 && len(s) > maxLen {
		e.add(path+"."+key, fmt.Sprintf("Must be at most %d characters", maxLen))
		return nil
	}
	return &s
}

func enumMessage(allowed []string) string {
	return "Must be one of: " + strings.Join(allowed, ", ")
}

func enumOrDefault(obj map[string]interface{}, key, path string, allowed []string, def string, e *errorList) string {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return def
	}
	s, ok := raw.(string)
	if !ok {
		e.add(path+"."+key, "Expected a string")
		return def
	}
	for _, v := range allowed {
		if v == s {
			return s
		}
	}
	e.add(path+"."+key, enumMessage(allowed))
	return def
}

func optURL(obj map[string]interface{}, key, path string, e *errorList) *string {
	s := optString(obj, key, path, 0, e)
	if s == nil {
		return nil
	}
	u, err := url.Parse(*s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		e.add(path+"."+key, "Must be a valid URL")
		return nil
	}
	return s
}

func optTags(obj map[string]interface{}, path string, e *errorList) []string {
	raw, ok := obj["tags"]
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		e.add(path+".tags", "Expected a list")
		return nil
	}
	if len(list) > 20 {
		e.add(path+".tags", "Must contain at most 20 items")
	}
	tags := make([]string, 0, len(list))
	for i, item := range list {
		itemPath := fmt.Sprintf("%s.tags.%d", path, i)
		s, ok := item.(string)
		if !ok {
			e.add(itemPath, "Expected a string")
			continue
		}
		if len(s) > 64 {
			e.add(itemPath, "Must be at most 64 characters")
			continue
		}
		tags = append(tags, s)
	}
	return tags
}

func optMetadata(obj map[string]interface{}, path string, e *errorList) map[string]interface{} {
	raw, ok := obj["metadata"]
	if !ok || raw == nil {
		return nil
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		e.add(path+".metadata", "Expected an object")
		return nil
	}
	return m
}

func asNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func optNumber(obj map[string]interface{}, key, path string, e *errorList) *float64 {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil
	}
	n, ok := asNumber(raw)
	if !ok {
		e.add(path+"."+key, "Expected a number")
		return nil
	}
	return &n
}

func optPort(obj map[string]interface{}, path string, e *errorList) *int {
	n := optNumber(obj, "port", path, e)
	if n == nil {
		return nil
	}
	port := int(*n)
	if float64(port) != *n || port < 1 || port > 65535 {
		e.add(path+".port", "Must be an integer between 1 and 65535")
		return nil
	}
	return &port
}

func optBool(obj map[string]interface{}, key, path string, e *errorList) bool {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return false
	}
	b, ok := raw.(bool)
	if !ok {
		e.add(path+"."+key, "Expected a boolean")
		return false
	}
	return b
}
