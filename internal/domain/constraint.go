package domain

type ConstraintKind string

const (
	KindHard ConstraintKind = "HARD"
	KindSoft ConstraintKind = "SOFT"
)

// TenantConstraintConfig links a tenant to one catalog entry.
// Params already has the template defaults merged under the tenant overrides.
type TenantConstraintConfig struct {
	TenantID      string         `json:"tenantId" yaml:"-"`
	Code          string         `json:"code" yaml:"code"`
	Name          string         `json:"name,omitempty" yaml:"name,omitempty"`
	Kind          ConstraintKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Enabled       bool           `json:"enabled" yaml:"enabled"`
	Weight        *int           `json:"weight,omitempty" yaml:"weight,omitempty"`
	DefaultWeight int            `json:"defaultWeight" yaml:"defaultWeight,omitempty"`
	Params        map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// ConstraintTemplate is a catalog entry as persisted for admin tooling.
type ConstraintTemplate struct {
	Code          string            `json:"code"`
	Name          string            `json:"name"`
	Kind          ConstraintKind    `json:"kind"`
	DefaultWeight int               `json:"defaultWeight"`
	ParamSchema   map[string]string `json:"paramSchema,omitempty"`
	DefaultParams map[string]any    `json:"defaultParams,omitempty"`
}
