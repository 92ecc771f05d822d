package bee

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestParseMarkdown(t *testing.T) {
	src := "---\ntitle: Hooks\ndate: 2019-01-02 10:00:00\ncategory: React\ndraft: true\n---\n\n# Body\n"
	fm, body, err := ParseMarkdown([]byte(src))
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}
	if fm.Title != "Hooks" || fm.Category != "React" || !fm.Draft {
		t.Errorf("front matter = %+v", fm)
	}
	if body != "# Body\n" {
		t.Errorf("body = %q", body)
	}
}

func TestParseMarkdownWithoutFrontMatter(t *testing.T) {
	fm, body, err := ParseMarkdown([]byte("just text"))
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}
	if fm.Title != "" || body != "just text" {
		t.Errorf("got %+v, %q", fm, body)
	}
}

func TestParseMarkdownEmptyFrontMatter(t *testing.T) {
	for _, src := range []string{"---\n---\nBody text.\n", "---\n---"} {
		fm, body, err := ParseMarkdown([]byte(src))
		if err != nil {
			t.Fatalf("ParseMarkdown(%q): %v", src, err)
		}
		if fm != (FrontMatter{}) {
			t.Errorf("ParseMarkdown(%q) front matter = %+v", src, fm)
		}
		want := ""
		if strings.Contains(src, "Body") {
			want = "Body text.\n"
		}
		if body != want {
			t.Errorf("ParseMarkdown(%q) body = %q, want %q", src, body, want)
		}
	}
}

func TestParseMarkdownUnterminated(t *testing.T) {
	if _, _, err := ParseMarkdown([]byte("---\ntitle: x\n")); err == nil {
		t.Error("expected error for unterminated front matter")
	}
}

func TestNormalizeDate(t *testing.T) {
	for in, want := range map[string]string{
		"2019-01-02":                "2019-01-02",
		"2019-01-02 10:00:00":       "2019-01-02",
		"2019-01-02T10:00:00+09:00": "2019-01-02",
	} {
		got, err := normalizeDate(in)
		if err != nil || got != want {
			t.Errorf("normalizeDate(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := normalizeDate("yesterday"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestExcerpt(t *testing.T) {
	body := "# Title\n\n```go\ncode\n```\n\nFirst   real\nparagraph.\n\nSecond."
	if got := excerpt(body); got != "First real paragraph." {
		t.Errorf("excerpt = %q", got)
	}
	long := strings.Repeat("a", excerptLen+10)
	if got := excerpt(long); len([]rune(got)) != excerptLen+1 || !strings.HasSuffix(got, "…") {
		t.Errorf("long excerpt = %q", got)
	}
}

func TestSlugFor(t *testing.T) {
	tests := map[string]string{
		"blog/react-hooks/index.md": "react-hooks",
		"hello-world.md":            "hello-world",
		"blog/My Post.md":           "my-post",
	}
	for in, want := range tests {
		if got := slugFor(in); got != want {
			t.Errorf("slugFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestImportContent(t *testing.T) {
	s := setupTestStore(t)
	fsys := fstest.MapFS{
		"blog/hello/index.md": {Data: []byte("---\ntitle: Hello\ndate: 2024-03-01\ncategory: React\n---\n\nHello there.\n")},
		"blog/wip/index.md":   {Data: []byte("---\ntitle: WIP\ndate: 2024-03-02\ndescription: soon\ndraft: true\n---\nbody\n")},
		"__about/index.md":    {Data: []byte("---\ntitle: About\n---\n\nAbout me.\n")},
		"assets/logo.png":     {Data: []byte{0x89}},
	}

	res, err := ImportContent(s, fsys)
	if err != nil {
		t.Fatalf("ImportContent: %v", err)
	}
	if res.Posts != 2 || res.Pages != 1 {
		t.Errorf("result = %+v", res)
	}

	hello, err := s.GetPost("hello")
	if err != nil {
		t.Fatalf("GetPost(hello): %v", err)
	}
	if hello.Summary != "Hello there." || hello.Category != "React" || hello.Date != "2024-03-01" {
		t.Errorf("hello = %+v", hello)
	}

	wip, err := s.GetPostAny("wip")
	if err != nil {
		t.Fatalf("GetPostAny(wip): %v", err)
	}
	if wip.Published || wip.Summary != "soon" {
		t.Errorf("wip = %+v", wip)
	}

	about, err := s.GetPage("about")
	if err != nil || about != "About me.\n" {
		t.Errorf("about = %q, %v", about, err)
	}
}

func TestImportContentBadDate(t *testing.T) {
	s := setupTestStore(t)
	fsys := fstest.MapFS{
		"blog/x.md": {Data: []byte("---\ntitle: X\ndate: never\n---\nbody\n")},
	}
	_, err := ImportContent(s, fsys)
	if err == nil || !strings.Contains(err.Error(), "blog/x.md") {
		t.Errorf("expected error naming the file, got %v", err)
	}
}
