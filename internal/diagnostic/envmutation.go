package diagnostic

// EnvMutation describes a single environment-variable mutation for
// audit purposes: which operation (get/set/remove), which key, which
// scope (process/thread/test), and who requested it.
type EnvMutation struct {
	Operation   string
	Key         string
	Scope       string
	RequestedBy string
}

// WithEnvMutation attaches the env_mutation event's required metadata
// keys (env.operation, env.key, env.scope, requested_by) to the
// diagnostic's `process` extension and, verbatim, to the audit
// metadata — the exact key names an env_mutation audit event requires
// (see AuditEnvelope's required-key table), so a diagnostic built this
// way can be forwarded directly as that event's envelope metadata.
func (b *Builder) WithEnvMutation(m EnvMutation) *Builder {
	ext, _ := b.d.Extensions["process"].(map[string]any)
	if ext == nil {
		ext = map[string]any{}
	}
	ext["operation"] = m.Operation
	ext["key"] = m.Key
	ext["scope"] = m.Scope
	ext["requested_by"] = m.RequestedBy
	b.d.Extensions["process"] = ext

	b.d.AuditMetadata["env.operation"] = m.Operation
	b.d.AuditMetadata["env.key"] = m.Key
	b.d.AuditMetadata["env.scope"] = m.Scope
	b.d.AuditMetadata["requested_by"] = m.RequestedBy
	return b
}
