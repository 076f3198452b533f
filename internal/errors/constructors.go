package errors

// Convenience functions for common error patterns

// Config errors

func ConfigDirNotFound(path string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "site config directory not found").
		WithContext("path", path)
}

func ConfigRequired(variable string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("variable", variable)
}

func ConfigParse(file string, cause error) *BuildError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "config file parse failed").
		WithContext("file", file)
}

// Content errors

func FrontMatterParse(file string, cause error) *BuildError {
	return Wrap(cause, CategoryContent, SeverityError, "front matter parse failed").
		WithContext("file", file)
}

func DateParse(file string, value string, cause error) *BuildError {
	return Wrap(cause, CategoryContent, SeverityError, "date parse failed").
		WithContext("file", file).
		WithContext("date", value)
}

func MissingLanguage(document string) *BuildError {
	return New(CategoryContent, SeverityError, "document has no language").
		WithContext("document", document)
}

func MissingURL(contentType, title string) *BuildError {
	return New(CategoryContent, SeverityError, "document has no url").
		WithContext("content_type", contentType).
		WithContext("title", title)
}

func DuplicateURL(url, contentType, title string) *BuildError {
	return New(CategoryContent, SeverityError, "duplicate url").
		WithContext("url", url).
		WithContext("content_type", contentType).
		WithContext("title", title)
}

// Render errors

func TemplateNotFound(name, document string) *BuildError {
	return New(CategoryRender, SeverityError, "template not found").
		WithContext("template", name).
		WithContext("document", document)
}

func RenderFailed(document string, cause error) *BuildError {
	return Wrap(cause, CategoryRender, SeverityError, "render failed").
		WithContext("document", document)
}

func OutputInvalid(document string) *BuildError {
	return New(CategoryRender, SeverityError, "rendered output is not valid HTML").
		WithContext("document", document)
}

// Link validation errors

func BrokenLink(url, document string) *BuildError {
	return New(CategoryLinks, SeverityError, "broken internal link").
		WithContext("url", url).
		WithContext("document", document)
}

func MalformedLink(url, document string) *BuildError {
	return New(CategoryLinks, SeverityError, "malformed link").
		WithContext("url", url).
		WithContext("document", document)
}
