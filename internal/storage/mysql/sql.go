package mysql

const upsertTemplateSQL = `
INSERT INTO constraint_templates
  (code, name, kind, default_weight, param_schema, default_params)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name           = VALUES(name),
  kind           = VALUES(kind),
  default_weight = VALUES(default_weight),
  param_schema   = VALUES(param_schema),
  default_params = VALUES(default_params),
  updated_at     = CURRENT_TIMESTAMP
`

const upsertTenantConstraintSQL = `
INSERT INTO tenant_constraints
  (tenant_id, code, enabled, weight, params)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  enabled    = VALUES(enabled),
  weight     = VALUES(weight),
  params     = VALUES(params),
  updated_at = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Enabled, currently valid tenant rows joined with their template. Validity
// bounds are half-open: valid_from <= now < valid_to, NULL means unbounded.
const getTenantConstraintsSQL = `
SELECT
  t.code,
  t.name,
  t.kind,
  t.default_weight,
  t.default_params,
  tc.enabled,
  tc.weight,
  tc.params
FROM tenant_constraints tc
JOIN constraint_templates t ON t.code = tc.code
WHERE tc.tenant_id = ?
  AND tc.enabled = 1
  AND (tc.valid_from IS NULL OR tc.valid_from <= ?)
  AND (tc.valid_to   IS NULL OR tc.valid_to   >  ?)
ORDER BY tc.id
`
