package capreg

// CoreCapabilities returns the descriptor set a fresh process installs
// at startup, before any plugin bundle is loaded. Stages mirror the
// defaults resolved by ResolveCapability for the corresponding
// capability id, so a freshly-provisioned registry agrees with the
// checker's own expectations about where each core capability sits.
func CoreCapabilities() []Descriptor {
	core := Provider{Kind: ProviderCore}
	return []Descriptor{
		NewDescriptor("io", Beta, []string{"io", "fs.read", "fs.write"}, core),
		NewDescriptor("time", Stable, []string{"time"}, core),
		NewDescriptor("unicode", Beta, []string{"text"}, core),
		NewDescriptor("process", Beta, []string{"process"}, core),
		NewDescriptor("thread", Beta, []string{"thread"}, core),
		NewDescriptor("syscall", Beta, []string{"syscall"}, core),
		NewDescriptor("memory", Beta, []string{"memory"}, core),
		NewDescriptor("signal", Beta, []string{"signal"}, core),
		NewDescriptor("audit", Beta, []string{"audit"}, core),
		NewDescriptor("security", Beta, []string{"security"}, core),
		NewDescriptor("trace", Beta, []string{"trace"}, core),
		NewDescriptor("debug", Beta, []string{"debug"}, core),
		NewDescriptor("mem", Beta, []string{"collection"}, core),
		NewDescriptor("metrics", Beta, []string{"metrics"}, core),
		NewDescriptor("panic", Experimental, []string{"panic"}, core),
		NewDescriptor("unsafe", Experimental, []string{"unsafe"}, core),
		NewDescriptor("ffi", Experimental, []string{"ffi"}, core),
		NewDescriptor("runtime", Experimental, []string{"runtime"}, core),
	}
}

// NewProvisionedRegistry returns a registry pre-seeded with the core
// capability set, ready for use before any plugin bundle is installed.
func NewProvisionedRegistry() *Registry {
	r := NewRegistry()
	r.Provision(CoreCapabilities()...)
	return r
}
