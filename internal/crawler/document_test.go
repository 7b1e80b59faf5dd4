package crawler

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
)

const sidebarHTML = `<html><body>
<div class="sphinxsidebarwrapper">
  <ul><li>Docs by version</li></ul>
  <ul>
    <li><a href="https://docs.python.org/3.14/">Python 3.14 (in development)</a></li>
    <li><a href="https://docs.python.org/3.13/">Python 3.13 (stable)</a></li>
    <li>All versions</li>
  </ul>
</div>
<table class="docutils align-default"><tr><td><a href="archives/python-docs-pdf-a4.zip">PDF</a></td></tr></table>
<dl class="rfc2822 field-list simple"><dt class="field-odd">Status<span>:</span></dt><dd>Final</dd></dl>
</body></html>`

// TestFindRequired tests lookup of mandatory elements.
func TestFindRequired(t *testing.T) {
	t.Parallel()

	doc, err := ParseString(sidebarHTML)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	t.Run("matches tag and class", func(t *testing.T) {
		t.Parallel()

		sel, err := FindRequired(doc.Selection, "div", map[string]string{"class": "sphinxsidebarwrapper"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := sel.Find("ul").Length(); got != 2 {
			t.Errorf("expected 2 lists, got %d", got)
		}
	})

	t.Run("class matches a subset of the element classes", func(t *testing.T) {
		t.Parallel()

		if _, err := FindRequired(doc.Selection, "table", map[string]string{"class": "docutils"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if _, err := FindRequired(doc.Selection, "dl", map[string]string{"class": "rfc2822 simple"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("returns only the first match", func(t *testing.T) {
		t.Parallel()

		sel, err := FindRequired(doc.Selection, "a", nil)
		if err != nil {
			t.Fatal(err)
		}
		if sel.Length() != 1 {
			t.Fatalf("expected one element, got %d", sel.Length())
		}
		if href, _ := sel.Attr("href"); href != "https://docs.python.org/3.14/" {
			t.Errorf("unexpected first anchor %q", href)
		}
	})

	t.Run("matches other attributes by equality", func(t *testing.T) {
		t.Parallel()

		if _, err := FindRequired(doc.Selection, "a", map[string]string{"href": "https://docs.python.org/3.13/"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if _, err := FindRequired(doc.Selection, "a", map[string]string{"href": "https://docs.python.org/3.1"}); err == nil {
			t.Error("expected prefix not to match")
		}
	})

	t.Run("missing element returns TagNotFoundError", func(t *testing.T) {
		t.Parallel()

		_, err := FindRequired(doc.Selection, "section", map[string]string{"id": "numerical-index"})

		var notFound *TagNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected *TagNotFoundError, got %T: %v", err, err)
		}
		if notFound.Tag != "section" {
			t.Errorf("expected tag section, got %q", notFound.Tag)
		}
		if notFound.Attrs["id"] != "numerical-index" {
			t.Errorf("unexpected attrs %v", notFound.Attrs)
		}
	})
}

// TestFindAll tests collection of elements in document order.
func TestFindAll(t *testing.T) {
	t.Parallel()

	doc, err := ParseString(`<ul><li class="toctree-l1 x">a</li><li class="toctree-l2">b</li><li class="toctree-l1">c</li></ul>`)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	FindAll(doc.Selection, "li", "toctree-l1").Each(func(_ int, s *goquery.Selection) {
		got = append(got, s.Text())
	})
	if diff := cmp.Diff([]string{"a", "c"}, got); diff != "" {
		t.Errorf("FindAll mismatch (-want +got):\n%s", diff)
	}

	if n := FindAll(doc.Selection, "li", "").Length(); n != 3 {
		t.Errorf("expected 3 items without class filter, got %d", n)
	}
}

// TestSelect tests CSS selector queries.
func TestSelect(t *testing.T) {
	t.Parallel()

	doc, err := ParseString(`<section id="what-s-new-in-python"><div class="toctree-wrapper compound"><ul>
<li class="toctree-l1"><a href="3.13.html">What's New In Python 3.13</a><ul><li class="toctree-l2"><a href="3.13.html#summary">Summary</a></li></ul></li>
<li class="toctree-l1"><a href="3.12.html">What's New In Python 3.12</a></li>
</ul></div></section>`)
	if err != nil {
		t.Fatal(err)
	}

	links := Select(doc.Selection, "div.toctree-wrapper li.toctree-l1 > a")
	if links.Length() != 2 {
		t.Fatalf("expected 2 top level links, got %d", links.Length())
	}
	if href, _ := links.Last().Attr("href"); href != "3.12.html" {
		t.Errorf("unexpected href %q", href)
	}
}

// TestText tests visible text extraction.
func TestText(t *testing.T) {
	t.Parallel()

	doc, err := ParseString("<dl><dt>Editor:</dt>\n<dd>Adam <b>Turner</b></dd></dl>")
	if err != nil {
		t.Fatal(err)
	}

	got := Text(doc.Find("dl"))
	if got != "Editor:\nAdam Turner" {
		t.Errorf("unexpected text %q", got)
	}
	if Text(doc.Find("table")) != "" {
		t.Error("empty selection should have empty text")
	}
}

// TestResolveURL tests link resolution against a page URL.
func TestResolveURL(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		base    string
		href    string
		want    string
		wantErr bool
	}{
		{"relative file", "https://docs.python.org/3/whatsnew/", "3.13.html", "https://docs.python.org/3/whatsnew/3.13.html", false},
		{"relative path", "https://peps.python.org/", "pep-0008/", "https://peps.python.org/pep-0008/", false},
		{"sibling path", "https://docs.python.org/3/download.html", "archives/python-3.13-docs-pdf-a4.zip", "https://docs.python.org/3/archives/python-3.13-docs-pdf-a4.zip", false},
		{"absolute", "https://docs.python.org/3/", "https://docs.python.org/3.12/", "https://docs.python.org/3.12/", false},
		{"empty href", "https://docs.python.org/3/", "  ", "", true},
		{"invalid base", "://bad", "x.html", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveURL(tc.base, tc.href)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ResolveURL() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ResolveURL() = %q, want %q", got, tc.want)
			}
		})
	}
}

// TestErrorMessages tests the error strings of FetchError and TagNotFoundError.
func TestErrorMessages(t *testing.T) {
	t.Parallel()

	t.Run("tag not found lists attributes sorted", func(t *testing.T) {
		t.Parallel()

		err := &TagNotFoundError{
			URL:   "https://docs.python.org/3/",
			Tag:   "div",
			Attrs: map[string]string{"id": "x", "class": "sphinxsidebarwrapper"},
		}
		want := `tag not found: div {class="sphinxsidebarwrapper" id="x"} on https://docs.python.org/3/`
		if err.Error() != want {
			t.Errorf("got %q, want %q", err.Error(), want)
		}
	})

	t.Run("tag not found without attributes", func(t *testing.T) {
		t.Parallel()

		err := &TagNotFoundError{Tag: "ul"}
		if err.Error() != "tag not found: ul" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("fetch error with status", func(t *testing.T) {
		t.Parallel()

		err := &FetchError{URL: "https://peps.python.org/", StatusCode: 404}
		if !strings.Contains(err.Error(), "https://peps.python.org/") || !strings.Contains(err.Error(), "404") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("fetch error unwraps cause", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection reset")
		err := &FetchError{URL: "https://peps.python.org/", Err: cause}
		if !errors.Is(err, cause) {
			t.Error("expected errors.Is to find the cause")
		}
	})
}
