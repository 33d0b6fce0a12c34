package quality_test

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"creatoriq/internal/knowledge"
	"creatoriq/internal/quality"
)

var testBrand = quality.BrandTokens{
	PrimaryColor:   "#1A73E8",
	SecondaryColor: "#FBBC04",
	FontFamily:     "'Inter', sans-serif",
}

const testHandle = "@calmcoach"

type artifactShape struct {
	words    int
	chapters int
	// replace swaps the first filler words for these, keeping the word count.
	replace []string
	// sources are cited one comment each; defaults to v1 and v2.
	sources []string
}

// buildArtifact renders an accessible, on-brand pdf_guide whose visible text
// holds exactly shape.words words.
func buildArtifact(shape artifactShape) string {
	var body strings.Builder
	used := 1 // footer handle
	for i := 1; i <= shape.chapters; i++ {
		fmt.Fprintf(&body, `<section id="chapter-%d"><h2>Chapter %d</h2></section>`, i, i)
		used += 2
	}
	filler := make([]string, 0, shape.words-used)
	for i := 0; len(filler) < shape.words-used; i++ {
		filler = append(filler, fmt.Sprintf("insight%d", i))
	}
	copy(filler, shape.replace)

	sources := shape.sources
	if len(sources) == 0 {
		sources = []string{"v1", "v2"}
	}
	var comments strings.Builder
	for _, id := range sources {
		fmt.Fprintf(&comments, "<!-- sources: %s -->", id)
	}
	return `<!DOCTYPE html><html lang="en"><head>` +
		`<meta name="viewport" content="width=device-width, initial-scale=1">` +
		`<style>body{font-family:'Inter',sans-serif;color:#1a73e8;border-color:#fbbc04}</style>` +
		`<script>var tracking = "not visible text at all";</script>` +
		`</head><body>` + body.String() +
		comments.String() +
		`<p>` + strings.Join(filler, " ") + `</p>` +
		`<footer>@calmcoach</footer></body></html>`
}

func gate(t *testing.T, eval quality.Evaluation, key quality.GateKey) quality.GateEvaluation {
	t.Helper()
	g, ok := eval.Gate(key)
	if !ok {
		t.Fatalf("missing gate %s", key)
	}
	return g
}

func TestEvaluateFullArtifactPasses(t *testing.T) {
	html := buildArtifact(artifactShape{words: 1400, chapters: 5})
	eval := quality.Evaluate(quality.Input{
		HTML:           html,
		ProductType:    knowledge.ProductPDFGuide,
		SourceVideoIDs: []string{"v1", "v2"},
		Brand:          testBrand,
		CreatorHandle:  testHandle,
	})

	if eval.WordCount != 1400 {
		t.Fatalf("expected 1400 visible words, got %d", eval.WordCount)
	}
	depth := gate(t, eval, quality.GateContentDepth)
	if depth.Score != 100 || !depth.Passed {
		t.Fatalf("expected content depth 100 and passing, got %+v", depth)
	}
	if brand := gate(t, eval, quality.GateBrandFidelity); brand.Score != 100 {
		t.Fatalf("expected brand fidelity 100, got %+v", brand)
	}
	if a11y := gate(t, eval, quality.GateAccessibility); a11y.Score != 100 {
		t.Fatalf("expected accessibility 100, got %+v", a11y)
	}
	if ev := gate(t, eval, quality.GateEvidenceLock); ev.Score != 100 {
		t.Fatalf("expected evidence lock 100, got %+v", ev)
	}
	if !eval.OverallPassed || len(eval.FailingGates) != 0 {
		t.Fatalf("expected overall pass, failing=%v", eval.FailingGates)
	}
	if eval.OverallScore != 100 {
		t.Fatalf("expected overall 100, got %d", eval.OverallScore)
	}
	if eval.SourceCommentCount != 2 {
		t.Fatalf("expected 2 source comments, got %d", eval.SourceCommentCount)
	}
}

func TestPlaceholderTextCostsBrandAndDepth(t *testing.T) {
	input := func(replace []string) quality.Input {
		return quality.Input{
			HTML:           buildArtifact(artifactShape{words: 700, chapters: 5, replace: replace}),
			ProductType:    knowledge.ProductPDFGuide,
			SourceVideoIDs: []string{"v1", "v2"},
			Brand:          testBrand,
			CreatorHandle:  testHandle,
		}
	}
	clean := quality.Evaluate(input([]string{"quiet", "harbor"}))
	dirty := quality.Evaluate(input([]string{"Lorem", "ipsum"}))

	if clean.WordCount != dirty.WordCount {
		t.Fatalf("word counts differ: %d vs %d", clean.WordCount, dirty.WordCount)
	}
	cleanBrand, dirtyBrand := gate(t, clean, quality.GateBrandFidelity), gate(t, dirty, quality.GateBrandFidelity)
	if cleanBrand.Score-dirtyBrand.Score != 30 {
		t.Fatalf("expected brand drop of 30, got %d -> %d", cleanBrand.Score, dirtyBrand.Score)
	}
	cleanDepth, dirtyDepth := gate(t, clean, quality.GateContentDepth), gate(t, dirty, quality.GateContentDepth)
	if cleanDepth.Score != 58 {
		t.Fatalf("expected clean depth 50+8, got %d", cleanDepth.Score)
	}
	if cleanDepth.Score-dirtyDepth.Score != 25 {
		t.Fatalf("expected depth drop of 25, got %d -> %d", cleanDepth.Score, dirtyDepth.Score)
	}
}

func TestContentDepthStructurePenalty(t *testing.T) {
	eval := quality.Evaluate(quality.Input{
		HTML:        buildArtifact(artifactShape{words: 1400, chapters: 1}),
		ProductType: knowledge.ProductPDFGuide,
	})
	if depth := gate(t, eval, quality.GateContentDepth); depth.Score != 88 {
		t.Fatalf("expected 100-12 for a single chapter, got %d", depth.Score)
	}
}

func TestContentDepthUnknownProductTypeUsesGuideTarget(t *testing.T) {
	eval := quality.Evaluate(quality.Input{
		HTML:        buildArtifact(artifactShape{words: 1400, chapters: 5}),
		ProductType: "webinar",
	})
	depth := gate(t, eval, quality.GateContentDepth)
	if depth.Score != 100 {
		t.Fatalf("expected pdf_guide scoring, got %d", depth.Score)
	}
	if len(depth.Notes) == 0 || !strings.Contains(depth.Notes[0], "Unknown product type") {
		t.Fatalf("expected unknown product type note, got %v", depth.Notes)
	}
}

func TestContentDepthNormalizesProductType(t *testing.T) {
	html := buildArtifact(artifactShape{words: 1400, chapters: 5})
	for _, requested := range []knowledge.ProductType{"PDF_GUIDE", " pdf_guide", "Pdf_Guide "} {
		eval := quality.Evaluate(quality.Input{HTML: html, ProductType: requested})
		depth := gate(t, eval, quality.GateContentDepth)
		if depth.Score != 100 || !depth.Passed {
			t.Fatalf("%q: expected pdf_guide depth 100, got %+v", requested, depth)
		}
		for _, note := range depth.Notes {
			if strings.Contains(note, "Unknown product type") {
				t.Fatalf("%q: unexpected unknown type note %q", requested, note)
			}
		}
	}

	// 1400 visible words clear the 1200 mini_course target, but chapter ids
	// are not module markers.
	eval := quality.Evaluate(quality.Input{HTML: html, ProductType: "Mini_Course"})
	depth := gate(t, eval, quality.GateContentDepth)
	if depth.Score != 88 {
		t.Fatalf("expected mini_course scoring 100-12, got %+v", depth)
	}
}

func TestAccessibilityClampsAdversarialMarkup(t *testing.T) {
	var b strings.Builder
	b.WriteString("<div><font>old school</font>")
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, `<img src="img%d.png">`, i)
	}
	b.WriteString("</div>")

	eval := quality.Evaluate(quality.Input{HTML: b.String(), ProductType: knowledge.ProductPDFGuide})
	a11y := gate(t, eval, quality.GateAccessibility)
	if a11y.Score < 0 || a11y.Score > 100 {
		t.Fatalf("accessibility score out of range: %d", a11y.Score)
	}
	// lang 15 + viewport 15 + alt cap 25 + headings 10 + legacy 15
	if a11y.Score != 20 {
		t.Fatalf("expected accessibility 20, got %d (%v)", a11y.Score, a11y.Notes)
	}
	if a11y.Passed {
		t.Fatal("expected accessibility to fail")
	}
	for _, g := range eval.Gates {
		if g.Score < 0 || g.Score > 100 {
			t.Fatalf("gate %s out of range: %d", g.Key, g.Score)
		}
	}
}

func TestAccessibilityAltPenaltyScales(t *testing.T) {
	base := `<html lang="en"><head><meta name="viewport" content="width=device-width"></head><body>` +
		`<h1>a</h1><h2>b</h2><h2>c</h2><h3>d</h3>%s</body></html>`
	tests := []struct {
		name string
		imgs string
		want int
	}{
		{"all described", `<img src="a.png" alt="chart"><img src="b.png" alt="">`, 100},
		{"one missing", `<img src="a.png">`, 88},
		{"three missing", `<img src="a.png"><img src="b.png"><img src="c.png">`, 80},
		{"cap", strings.Repeat(`<img src="x.png">`, 10), 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := quality.Evaluate(quality.Input{HTML: fmt.Sprintf(base, tt.imgs)})
			if got := gate(t, eval, quality.GateAccessibility).Score; got != tt.want {
				t.Fatalf("accessibility = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDistinctivenessBounds(t *testing.T) {
	html := buildArtifact(artifactShape{words: 300, chapters: 4})

	empty := quality.Evaluate(quality.Input{HTML: html})
	d := gate(t, empty, quality.GateDistinctiveness)
	if d.Score != 100 || !d.Passed || empty.MaxCatalogSimilarity != 0 {
		t.Fatalf("expected auto-pass with empty catalog, got %+v sim=%v", d, empty.MaxCatalogSimilarity)
	}

	self := quality.Evaluate(quality.Input{HTML: html, CatalogHTML: []string{html}})
	d = gate(t, self, quality.GateDistinctiveness)
	if d.Score != 0 || d.Passed {
		t.Fatalf("expected duplicate to score 0 and fail, got %+v", d)
	}
	if math.Abs(self.MaxCatalogSimilarity-1) > 1e-9 {
		t.Fatalf("expected similarity 1, got %v", self.MaxCatalogSimilarity)
	}

	blank := quality.Evaluate(quality.Input{HTML: html, CatalogHTML: []string{"", "   "}})
	if d := gate(t, blank, quality.GateDistinctiveness); d.Score != 100 || !d.Passed {
		t.Fatalf("expected blank catalog entries to be ignored, got %+v", d)
	}
}

func TestMaxCatalogSimilarityTakesMaximum(t *testing.T) {
	a := "<p>alpha beta gamma delta epsilon zeta eta theta</p>"
	near := "<p>alpha beta gamma delta epsilon zeta eta iota</p>"
	far := "<p>one two three four five six seven eight</p>"
	sim, compared := quality.MaxCatalogSimilarity(a, []string{far, near})
	if compared != 2 {
		t.Fatalf("expected 2 comparisons, got %d", compared)
	}
	// 5 shingles each, 4 shared
	if want := 4.0 / 6.0; math.Abs(sim-want) > 1e-9 {
		t.Fatalf("similarity = %v, want %v", sim, want)
	}
}

func TestEvidenceLockCoverage(t *testing.T) {
	html := `<p>body</p><!-- sources: v1,v2 -->`
	if got := quality.EvidenceCoverage(html, []string{"v1", "v2", "v3"}); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Fatalf("coverage = %v, want 2/3", got)
	}
	eval := quality.Evaluate(quality.Input{HTML: html, SourceVideoIDs: []string{"v1", "v2", "v3"}})
	ev := gate(t, eval, quality.GateEvidenceLock)
	// round(2/3*70 + 1/3*30)
	if ev.Score != 57 || ev.Passed {
		t.Fatalf("expected evidence lock 57 failing, got %+v", ev)
	}
	if len(ev.Notes) == 0 || !strings.Contains(ev.Notes[len(ev.Notes)-1], "v3") {
		t.Fatalf("expected note naming v3, got %v", ev.Notes)
	}
}

func TestEvidenceLockKeepsCaseDistinctIDs(t *testing.T) {
	html := `<p>body</p><!-- sources: aBc -->`
	declared := []string{"aBc", "AbC", " aBc "}
	if got := quality.EvidenceCoverage(html, declared); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("coverage = %v, want 0.5", got)
	}
	ev := gate(t, quality.Evaluate(quality.Input{HTML: html, SourceVideoIDs: declared}), quality.GateEvidenceLock)
	// round(0.5*70 + 0.5*30)
	if ev.Score != 50 || ev.Passed {
		t.Fatalf("expected evidence lock 50 failing, got %+v", ev)
	}
	if len(ev.Notes) == 0 || !strings.Contains(ev.Notes[len(ev.Notes)-1], "AbC") {
		t.Fatalf("expected note naming AbC, got %v", ev.Notes)
	}
}

func TestEvidenceLockWithoutDeclaredSources(t *testing.T) {
	withComment := quality.Evaluate(quality.Input{HTML: `<!-- Sources: abc -->`})
	if got := gate(t, withComment, quality.GateEvidenceLock).Score; got != 70 {
		t.Fatalf("expected 70 with comment, got %d", got)
	}
	without := quality.Evaluate(quality.Input{HTML: `<!-- just a note --><p>x</p>`})
	if got := gate(t, without, quality.GateEvidenceLock).Score; got != 45 {
		t.Fatalf("expected 45 without comment, got %d", got)
	}
}

func TestBrandFidelitySkipsMissingTokens(t *testing.T) {
	eval := quality.Evaluate(quality.Input{HTML: `<p>nothing branded</p>`})
	if got := gate(t, eval, quality.GateBrandFidelity).Score; got != 100 {
		t.Fatalf("expected no deductions without tokens, got %d", got)
	}

	eval = quality.Evaluate(quality.Input{
		HTML:          `<p>nothing branded</p>`,
		Brand:         testBrand,
		CreatorHandle: testHandle,
	})
	// 22 + 10 + 10 + 8
	if got := gate(t, eval, quality.GateBrandFidelity).Score; got != 50 {
		t.Fatalf("expected 50 with every token missing, got %d", got)
	}
}

func TestBrandFidelityChecksWholeFontToken(t *testing.T) {
	brand := quality.BrandTokens{FontFamily: "'Inter', sans-serif"}
	tests := []struct {
		name string
		html string
		want int
	}{
		{"exact token", `<style>p{font-family:'Inter', sans-serif}</style>`, 100},
		{"token without spaces", `<style>p{font-family:'INTER',sans-serif}</style>`, 100},
		{"first family only", `<style>p{font-family:'Inter', serif}</style>`, 90},
		{"absent", `<p>plain</p>`, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := quality.Evaluate(quality.Input{HTML: tt.html, Brand: brand})
			if got := gate(t, eval, quality.GateBrandFidelity).Score; got != tt.want {
				t.Fatalf("brand fidelity = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBrandFidelityMatchesBareHandle(t *testing.T) {
	eval := quality.Evaluate(quality.Input{HTML: `<p>Follow CalmCoach for more</p>`, CreatorHandle: "@calmcoach"})
	if got := gate(t, eval, quality.GateBrandFidelity).Score; got != 100 {
		t.Fatalf("expected bare handle to count, got %d", got)
	}
}

func TestOverallFailsOnSingleGate(t *testing.T) {
	html := buildArtifact(artifactShape{words: 1400, chapters: 5})
	eval := quality.Evaluate(quality.Input{
		HTML:           html,
		ProductType:    knowledge.ProductPDFGuide,
		SourceVideoIDs: []string{"v1", "v2"},
		CatalogHTML:    []string{html},
		Brand:          testBrand,
		CreatorHandle:  testHandle,
	})
	if eval.OverallPassed {
		t.Fatal("expected overall failure")
	}
	if !reflect.DeepEqual(eval.FailingGates, []quality.GateKey{quality.GateDistinctiveness}) {
		t.Fatalf("unexpected failing gates %v", eval.FailingGates)
	}
	if eval.OverallScore != 80 {
		t.Fatalf("expected overall 80 (distinctiveness weight .20 lost), got %d", eval.OverallScore)
	}
}

func TestFailingGatesFollowEnumOrder(t *testing.T) {
	eval := quality.Evaluate(quality.Input{
		HTML:           `<p>Lorem ipsum dolor</p>`,
		ProductType:    knowledge.ProductChecklistToolkit,
		SourceVideoIDs: []string{"v9"},
	})
	want := []quality.GateKey{
		quality.GateBrandFidelity,
		quality.GateAccessibility,
		quality.GateContentDepth,
		quality.GateEvidenceLock,
	}
	if !reflect.DeepEqual(eval.FailingGates, want) {
		t.Fatalf("failing gates = %v, want %v", eval.FailingGates, want)
	}
}

func TestNormalizeWeights(t *testing.T) {
	defaults := quality.DefaultWeights()
	w := quality.NormalizeWeights(quality.Weights{
		quality.GateEvidenceLock:  0.5,
		quality.GateAccessibility: -1,
		quality.GateContentDepth:  math.NaN(),
	})
	var sum float64
	for _, key := range quality.GateKeys() {
		sum += w[key]
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("weights sum to %v", sum)
	}
	total := 0.24 + 0.20 + 0.18 + 0.24 + 0.5
	if math.Abs(w[quality.GateEvidenceLock]-0.5/total) > 1e-9 {
		t.Fatalf("evidence weight = %v", w[quality.GateEvidenceLock])
	}
	if math.Abs(w[quality.GateAccessibility]-defaults[quality.GateAccessibility]/total) > 1e-9 {
		t.Fatalf("negative override should be ignored, got %v", w[quality.GateAccessibility])
	}

	plain := quality.NormalizeWeights(nil)
	for key, value := range defaults {
		if math.Abs(plain[key]-value) > 1e-9 {
			t.Fatalf("default weight %s changed: %v", key, plain[key])
		}
	}
}

func TestOverallScoreUsesWeights(t *testing.T) {
	eval := quality.Evaluate(quality.Input{
		HTML:    `<p>tiny</p>`,
		Weights: quality.Weights{quality.GateBrandFidelity: 10},
	})
	var expected float64
	for _, g := range eval.Gates {
		expected += float64(g.Score) * eval.Weights[g.Key]
	}
	if eval.OverallScore != int(math.Round(expected)) {
		t.Fatalf("overall = %d, want %v", eval.OverallScore, math.Round(expected))
	}
}

func TestEngineOptionsOverrideThresholds(t *testing.T) {
	engine := quality.NewEngine(quality.Options{
		Thresholds:           map[quality.GateKey]int{quality.GateEvidenceLock: 40},
		WordTargets:          map[knowledge.ProductType]int{knowledge.ProductPDFGuide: 700},
		MaxCatalogSimilarity: 0.5,
	})
	eval := engine.Evaluate(quality.Input{
		HTML:           buildArtifact(artifactShape{words: 700, chapters: 5}),
		ProductType:    knowledge.ProductPDFGuide,
		SourceVideoIDs: []string{"v1", "v2", "v3"},
	})
	if depth := gate(t, eval, quality.GateContentDepth); depth.Score != 100 {
		t.Fatalf("expected custom word target to give full depth, got %d", depth.Score)
	}
	ev := gate(t, eval, quality.GateEvidenceLock)
	if ev.Threshold != 40 || !ev.Passed {
		t.Fatalf("expected custom threshold to pass evidence lock, got %+v", ev)
	}
}

func TestVisibleText(t *testing.T) {
	html := `<html><head><style>.a{}</style><script>alert("x")</script></head>` +
		`<body><h1>Title</h1><p>First&amp;second</p><!-- hidden --><p>third</p><noscript>nope</noscript></body></html>`
	if got := quality.VisibleText(html); got != "Title First&second third" {
		t.Fatalf("VisibleText = %q", got)
	}
}

func TestBuildFeedbackForPrompt(t *testing.T) {
	failing := quality.Evaluate(quality.Input{
		HTML:           `<p>Coming soon</p>`,
		ProductType:    knowledge.ProductMiniCourse,
		SourceVideoIDs: []string{"v1"},
	})
	text := quality.BuildFeedbackForPrompt(failing)
	for _, want := range []string{"Brand Fidelity scored", "Content Depth scored", "Evidence Lock scored", "Placeholder text", "Revise the artifact"} {
		if !strings.Contains(text, want) {
			t.Fatalf("feedback missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Distinctiveness scored") {
		t.Fatalf("passing gates should not be listed:\n%s", text)
	}

	passing := quality.Evaluation{OverallScore: 93, OverallPassed: true}
	if got := quality.BuildFeedbackForPrompt(passing); got != "All quality gates passed with an overall score of 93/100." {
		t.Fatalf("unexpected passing feedback %q", got)
	}
}
