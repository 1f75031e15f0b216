package cms

import (
	"fmt"
	"strconv"
	"strings"

	"hotel_allocation/internal/domain"
)

// CMS collections drift between camelCase and snake_case field names and
// sometimes nest the template under "constraint".

func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			switch s := v.(type) {
			case string:
				if s != "" {
					return s
				}
			case float64:
				return strconv.FormatFloat(s, 'f', -1, 64)
			}
		}
	}
	return ""
}

func num(m map[string]any, keys ...string) (int, bool) {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return int(v), true
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

func boolean(m map[string]any, def bool, keys ...string) bool {
	for _, k := range keys {
		switch v := m[k].(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
	}
	return def
}

func obj(m map[string]any, keys ...string) map[string]any {
	for _, k := range keys {
		if v, ok := m[k].(map[string]any); ok {
			return v
		}
	}
	return nil
}

// MapConstraint converts one CMS document to a tenant config. Missing
// "enabled" counts as enabled since the query already filters on it.
func MapConstraint(tenantID string, doc map[string]any) (domain.TenantConstraintConfig, error) {
	tpl := obj(doc, "constraint", "template")
	if tpl == nil {
		tpl = doc
	}

	cfg := domain.TenantConstraintConfig{
		TenantID: tenantID,
		Code:     strings.ToUpper(str(doc, "code", "constraintCode", "constraint_code")),
		Name:     str(doc, "name", "title"),
		Kind:     domain.ConstraintKind(strings.ToUpper(str(doc, "kind", "type"))),
		Enabled:  boolean(doc, true, "enabled", "isEnabled", "is_enabled"),
		Params:   obj(doc, "params", "parameters"),
	}
	if cfg.Code == "" {
		cfg.Code = strings.ToUpper(str(tpl, "code"))
	}
	if cfg.Name == "" {
		cfg.Name = str(tpl, "name", "title")
	}
	if cfg.Kind == "" {
		cfg.Kind = domain.ConstraintKind(strings.ToUpper(str(tpl, "kind", "type")))
	}
	if cfg.Code == "" {
		return domain.TenantConstraintConfig{}, fmt.Errorf("%w: document without code", domain.ErrConfigLoad)
	}

	if w, ok := num(doc, "weight", "weightOverride", "weight_override"); ok {
		cfg.Weight = &w
	}
	if w, ok := num(doc, "defaultWeight", "default_weight"); ok {
		cfg.DefaultWeight = w
	} else if w, ok := num(tpl, "defaultWeight", "default_weight"); ok {
		cfg.DefaultWeight = w
	}
	return cfg, nil
}
