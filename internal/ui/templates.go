package ui

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
)

// excerptPolicy strips scripts, handlers and styles from stored excerpts
// while keeping ordinary formatting markup.
var excerptPolicy = bluemonday.UGCPolicy()

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"humanTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return humanize.Time(t)
	},
	"excerpt": func(s string) template.HTML {
		return template.HTML(excerptPolicy.Sanitize(s))
	},
	"categoryName": func(names map[string]string, id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	},
	"comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"dict": func(kv ...any) (map[string]any, error) {
		if len(kv)%2 != 0 {
			return nil, fmt.Errorf("dict: odd number of arguments")
		}
		m := make(map[string]any, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			k, ok := kv[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
			}
			m[k] = kv[i+1]
		}
		return m, nil
	},
}

// renderTemplate renders a template with the given data.
func renderTemplate(w io.Writer, name string, data map[string]any) error {
	content, ok := templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	layout, ok := templates["layout"]
	if !ok {
		return fmt.Errorf("layout template not found")
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(layout)
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	_, err = tmpl.New("content").Parse(content)
	if err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	// Add shared components.
	for compName, compContent := range templates {
		if strings.HasPrefix(compName, "components/") {
			_, err = tmpl.New(filepath.Base(compName)).Parse(compContent)
			if err != nil {
				return fmt.Errorf("parse component %s: %w", compName, err)
			}
		}
	}

	return tmpl.Execute(w, data)
}

// templates holds all template content.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    {{with .Description}}<meta name="description" content="{{.}}">{{end}}
    {{with .Canonical}}<link rel="canonical" href="{{.}}">{{end}}
    {{with .PrevHref}}<link rel="prev" href="{{.}}">{{end}}
    {{with .NextHref}}<link rel="next" href="{{.}}">{{end}}
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-50 min-h-screen">
    <nav class="bg-white shadow-sm border-b">
        <div class="max-w-7xl mx-auto px-4 sm:px-6 lg:px-8">
            <div class="flex h-16">
                <a href="/" class="flex items-center px-2 py-2 text-xl font-bold text-indigo-600">{{.Site.Name}}</a>
                <div class="hidden sm:ml-6 sm:flex sm:space-x-8">
                    {{range .Collections}}
                    <a href="{{.Path}}" class="border-transparent text-gray-500 hover:border-gray-300 hover:text-gray-700 inline-flex items-center px-1 pt-1 border-b-2 text-sm font-medium">
                        {{.Title}}
                    </a>
                    {{end}}
                </div>
            </div>
        </div>
    </nav>

    <main class="max-w-7xl mx-auto py-6 sm:px-6 lg:px-8">
        {{template "content" .}}
    </main>
</body>
</html>`,

	"index": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <h1 class="text-2xl font-semibold text-gray-900">{{.Site.Name}}</h1>
    <ul class="mt-6 grid grid-cols-1 gap-5 sm:grid-cols-3">
        {{range .Collections}}
        <li class="bg-white shadow rounded-lg p-5">
            <a href="{{.Path}}" class="text-lg font-medium text-indigo-600 hover:text-indigo-800">{{.Title}}</a>
        </li>
        {{end}}
    </ul>
</div>
{{end}}`,

	"list": `{{define "content"}}
<div class="px-4 py-6 sm:px-0">
    <div class="mb-6">
        <h1 class="text-2xl font-semibold text-gray-900">{{.Collection.Title}}</h1>
        {{with .Range}}<p class="mt-1 text-sm text-gray-500">Showing {{.}}</p>{{end}}
    </div>

    <form method="GET" action="{{.Collection.Path}}" class="bg-white shadow rounded-lg p-4 mb-6" role="search">
        <label for="search" class="sr-only">Search</label>
        <input id="search" type="search" name="search" value="{{.Filter.SearchQuery}}" placeholder="Search {{.Collection.Title}}"
               class="block w-full px-3 py-2 border border-gray-300 rounded-md sm:text-sm">
        {{if .Categories}}
        <fieldset class="mt-4 flex flex-wrap gap-4">
            <legend class="sr-only">Categories</legend>
            {{$tax := .Collection.Taxonomy}}
            {{range .Categories}}
            <label class="inline-flex items-center text-sm text-gray-700">
                <input type="checkbox" name="{{$tax}}" value="{{.ID}}"{{if .Checked}} checked{{end}} class="mr-2">
                {{.Name}}
            </label>
            {{end}}
        </fieldset>
        {{end}}
        {{if .Listing.FeaturedAvailable}}
        <label class="mt-4 inline-flex items-center text-sm text-gray-700">
            <input type="checkbox" name="featured" value="true"{{if .Filter.FeaturedOnly}} checked{{end}} class="mr-2">
            Featured only
        </label>
        {{end}}
        <div class="mt-4 flex items-center space-x-4">
            <button type="submit" class="px-4 py-2 text-sm font-medium rounded-md text-white bg-indigo-600 hover:bg-indigo-700">Apply</button>
            {{if .Filter.Active}}<a href="{{.ClearHref}}" class="text-sm text-gray-500 hover:text-gray-700">Clear filters</a>{{end}}
        </div>
    </form>

    {{$names := .CategoryNames}}
    {{$path := .Collection.Path}}
    {{if and .Listing.Featured (not .Filter.FeaturedOnly)}}
    <section class="mb-8" aria-label="Featured">
        <h2 class="text-lg font-medium text-gray-900 mb-3">Featured</h2>
        <div class="grid grid-cols-1 gap-5 sm:grid-cols-2" data-featured>
            {{range .Listing.Featured}}{{template "card" (dict "Item" . "Names" $names "Path" $path)}}{{end}}
        </div>
    </section>
    {{end}}

    <div class="grid grid-cols-1 gap-5 sm:grid-cols-3" data-results>
        {{range .Listing.Window.Items}}
        {{template "card" (dict "Item" . "Names" $names "Path" $path)}}
        {{else}}
        <p class="col-span-3 py-8 text-center text-gray-500" data-empty>No matching entries.</p>
        {{end}}
    </div>

    {{template "pagination" .}}
</div>
{{end}}`,

	"detail": `{{define "content"}}
<article class="px-4 py-6 sm:px-0">
    <nav class="text-sm mb-4"><a href="{{.Collection.Path}}" class="text-gray-500 hover:text-gray-700">{{.Collection.Title}}</a></nav>
    <h1 class="text-3xl font-semibold text-gray-900">{{.Item.Title}}</h1>
    {{if not .Item.Date.IsZero}}
    <p class="mt-1 text-sm text-gray-500"><time datetime="{{formatDate .Item.Date}}">{{humanTime .Item.Date}}</time></p>
    {{end}}
    {{$names := .CategoryNames}}
    {{if .Item.CategoryIDs}}
    <ul class="mt-3 flex flex-wrap gap-2">
        {{range .Item.CategoryIDs}}<li class="px-2.5 py-0.5 rounded-full text-xs font-medium bg-indigo-100 text-indigo-800">{{categoryName $names .}}</li>{{end}}
    </ul>
    {{end}}
    <div class="mt-6 prose">{{excerpt .Item.ExcerptHTML}}</div>
</article>
{{end}}`,

	"error": `{{define "content"}}
<div class="px-4 py-16 text-center">
    <h1 class="text-2xl font-semibold text-gray-900">{{.Heading}}</h1>
    <p class="mt-2 text-gray-500">{{.Message}}</p>
    <a href="/" class="mt-6 inline-block text-indigo-600 hover:text-indigo-800">Back to {{.Site.Name}}</a>
</div>
{{end}}`,

	"components/card": `{{define "card"}}
<article class="bg-white shadow rounded-lg p-5">
    <h2 class="text-lg font-medium text-gray-900"><a href="{{.Path}}/{{.Item.Slug}}">{{.Item.Title}}</a></h2>
    <div class="mt-2 text-sm text-gray-600">{{excerpt .Item.ExcerptHTML}}</div>
    {{$names := .Names}}
    {{if .Item.CategoryIDs}}
    <p class="mt-3 text-xs text-gray-500">{{range $i, $id := .Item.CategoryIDs}}{{if $i}}, {{end}}{{categoryName $names $id}}{{end}}</p>
    {{end}}
</article>
{{end}}`,

	"components/pagination": `{{define "pagination"}}
{{if gt .Listing.Window.TotalPages 1}}
<nav class="mt-8 flex items-center justify-between" aria-label="Pagination">
    {{if .PrevHref}}
    <a href="{{.PrevHref}}" rel="prev" class="px-4 py-2 border border-gray-300 text-sm font-medium rounded-md text-gray-700 bg-white hover:bg-gray-50">Previous</a>
    {{else}}
    <span class="px-4 py-2 text-sm text-gray-300" aria-disabled="true">Previous</span>
    {{end}}
    <ul class="flex space-x-1">
        {{range .PageLinks}}
        {{if .Ellipsis}}
        <li><span class="px-3 py-2 text-sm text-gray-500">{{.Label}}</span></li>
        {{else if .Current}}
        <li><a href="{{.Href}}" aria-current="page" class="px-3 py-2 text-sm font-semibold rounded-md bg-indigo-600 text-white">{{.Label}}</a></li>
        {{else}}
        <li><a href="{{.Href}}" class="px-3 py-2 text-sm rounded-md text-gray-700 hover:bg-gray-100">{{.Label}}</a></li>
        {{end}}
        {{end}}
    </ul>
    {{if .NextHref}}
    <a href="{{.NextHref}}" rel="next" class="px-4 py-2 border border-gray-300 text-sm font-medium rounded-md text-gray-700 bg-white hover:bg-gray-50">Next</a>
    {{else}}
    <span class="px-4 py-2 text-sm text-gray-300" aria-disabled="true">Next</span>
    {{end}}
</nav>
{{end}}
{{end}}`,
}
