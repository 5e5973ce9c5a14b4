package render

// Payload is the data context exposed to templates.
type Payload map[string]any

// Generator describes the running build tool.
type Generator struct {
	Name        string
	Version     string
	Environment string
}

// PluginInfo identifies the plugin that owns the asset being rendered.
type PluginInfo struct {
	Name string
	Slug string
}

// PayloadInput collects everything BuildPayload needs.
type PayloadInput struct {
	Generator  Generator
	SiteConfig map[string]any
	SiteData   map[string]any
	Page       map[string]any
	Plugin     PluginInfo
}

// BuildPayload assembles the template context.
//
// The site configuration is deep-copied before site.data is attached, so
// building a payload never mutates the caller's configuration and later
// changes to it are not seen by the payload.
func BuildPayload(in PayloadInput) Payload {
	generator := map[string]any{
		"name":        in.Generator.Name,
		"version":     in.Generator.Version,
		"environment": in.Generator.Environment,
	}

	site := copyMap(in.SiteConfig)
	if site == nil {
		site = map[string]any{}
	}
	data := copyMap(in.SiteData)
	if data == nil {
		data = map[string]any{}
	}
	site["data"] = data

	page := copyMap(in.Page)
	if page == nil {
		page = map[string]any{}
	}

	return Payload{
		"generator": generator,
		"jekyll":    generator,
		"site":      site,
		"page":      page,
		"plugin": map[string]any{
			"name": in.Plugin.Name,
			"slug": in.Plugin.Slug,
		},
	}
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
