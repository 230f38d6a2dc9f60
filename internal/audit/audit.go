// Package audit runs declarative presence checks against a rendered HTML
// page: each Check names a CSS selector and what the matched elements
// must satisfy.
package audit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"
)

// Expectation is the condition a Check's matches must meet.
type Expectation string

const (
	// ExpectPresent requires at least one match.
	ExpectPresent Expectation = "present"
	// ExpectOne requires exactly one match.
	ExpectOne Expectation = "one"
	// ExpectNonEmpty requires a first match whose Attr (or text) is not blank.
	ExpectNonEmpty Expectation = "non_empty"
	// ExpectAbsent requires no match.
	ExpectAbsent Expectation = "absent"
)

// Check is one declarative page assertion.
type Check struct {
	Name     string      `yaml:"name"`
	Selector string      `yaml:"selector"`
	Attr     string      `yaml:"attr,omitempty"`
	Expect   Expectation `yaml:"expect"`
}

// Result is the outcome of one Check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Report collects the results for one page.
type Report struct {
	URL     string
	Status  int
	Results []Result
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// Failures returns the failed results in check order.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// DefaultChecks covers the head and heading structure every listing and
// detail page is expected to carry.
func DefaultChecks() []Check {
	return []Check{
		{Name: "title", Selector: "head title", Expect: ExpectNonEmpty},
		{Name: "meta description", Selector: `meta[name="description"]`, Attr: "content", Expect: ExpectNonEmpty},
		{Name: "canonical link", Selector: `link[rel="canonical"]`, Attr: "href", Expect: ExpectNonEmpty},
		{Name: "single h1", Selector: "h1", Expect: ExpectOne},
		{Name: "viewport", Selector: `meta[name="viewport"]`, Attr: "content", Expect: ExpectNonEmpty},
	}
}

// LoadChecks reads a YAML list of checks.
func LoadChecks(path string) ([]Check, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checks: %w", err)
	}
	var checks []Check
	if err := yaml.Unmarshal(data, &checks); err != nil {
		return nil, fmt.Errorf("parse checks: %w", err)
	}
	for i, c := range checks {
		if c.Selector == "" {
			return nil, fmt.Errorf("check %d (%s): selector is required", i, c.Name)
		}
		switch c.Expect {
		case ExpectPresent, ExpectOne, ExpectNonEmpty, ExpectAbsent:
		case "":
			checks[i].Expect = ExpectPresent
		default:
			return nil, fmt.Errorf("check %d (%s): unknown expectation %q", i, c.Name, c.Expect)
		}
	}
	return checks, nil
}

// Run fetches url and evaluates checks against the response body. A non-2xx
// status is reported, not treated as an error.
func Run(ctx context.Context, client *http.Client, url string, checks []Check) (*Report, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	report, err := Evaluate(resp.Body, checks)
	if err != nil {
		return nil, err
	}
	report.URL = url
	report.Status = resp.StatusCode
	return report, nil
}

// Evaluate parses an HTML document and runs checks against it.
func Evaluate(r io.Reader, checks []Check) (*Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	report := &Report{Results: make([]Result, 0, len(checks))}
	for _, c := range checks {
		report.Results = append(report.Results, evaluate(doc, c))
	}
	return report, nil
}

func evaluate(doc *goquery.Document, c Check) Result {
	sel := doc.Find(c.Selector)
	n := sel.Length()
	res := Result{Name: c.Name}

	switch c.Expect {
	case ExpectAbsent:
		res.Passed = n == 0
		res.Detail = fmt.Sprintf("%d match(es)", n)
	case ExpectOne:
		res.Passed = n == 1
		res.Detail = fmt.Sprintf("%d match(es), want 1", n)
	case ExpectNonEmpty:
		if n == 0 {
			res.Detail = "no match"
			break
		}
		v := value(sel.First(), c.Attr)
		res.Passed = v != ""
		if res.Passed {
			res.Detail = fmt.Sprintf("%q", v)
		} else {
			res.Detail = "empty"
		}
	default:
		res.Passed = n > 0
		res.Detail = fmt.Sprintf("%d match(es)", n)
	}
	return res
}

func value(s *goquery.Selection, attr string) string {
	if attr == "" {
		return strings.TrimSpace(s.Text())
	}
	v, _ := s.Attr(attr)
	return strings.TrimSpace(v)
}
