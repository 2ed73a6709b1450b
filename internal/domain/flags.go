package domain

const (
	FlagEnableDeepLinks = "enableDeepLinks"
	FlagEnablePriority  = "enablePriority"
)

// FeatureFlags are supplied by the caller at validation time. A missing flag
// is false.
type FeatureFlags struct {
	EnableDeepLinks bool `json:"enableDeepLinks,omitempty"`
	EnablePriority  bool `json:"enablePriority,omitempty"`
}

// FeatureFlagsFromMap reads flags out of an untyped mapping. Anything other
// than a boolean true leaves the flag off.
func FeatureFlagsFromMap(m map[string]any) FeatureFlags {
	return FeatureFlags{
		EnableDeepLinks: m[FlagEnableDeepLinks] == true,
		EnablePriority:  m[FlagEnablePriority] == true,
	}
}
