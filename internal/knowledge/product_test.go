package knowledge_test

import (
	"reflect"
	"testing"

	"creatoriq/internal/knowledge"
)

func TestParseProductType(t *testing.T) {
	tests := []struct {
		in     string
		want   knowledge.ProductType
		wantOK bool
	}{
		{"pdf_guide", knowledge.ProductPDFGuide, true},
		{"  Mini_Course ", knowledge.ProductMiniCourse, true},
		{"challenge_7day", knowledge.ProductChallenge7Day, true},
		{"checklist_toolkit", knowledge.ProductChecklistToolkit, true},
		{"webinar", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := knowledge.ParseProductType(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("ParseProductType(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFilterProductTypes(t *testing.T) {
	got := knowledge.FilterProductTypes([]string{"mini_course", "ebook", "pdf_guide", "MINI_COURSE", "checklist_toolkit"}, 2)
	want := []knowledge.ProductType{knowledge.ProductMiniCourse, knowledge.ProductPDFGuide}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterProductTypes = %v, want %v", got, want)
	}
}

func TestTopicNodeHasProductType(t *testing.T) {
	node := knowledge.TopicNode{RecommendedProductTypes: []knowledge.ProductType{knowledge.ProductChallenge7Day}}
	if !node.HasProductType(knowledge.ProductChallenge7Day) {
		t.Fatal("expected challenge_7day match")
	}
	if node.HasProductType(knowledge.ProductPDFGuide) {
		t.Fatal("unexpected pdf_guide match")
	}
	if !node.HasProductType(" Challenge_7DAY ") {
		t.Fatal("expected mixed-case padded type to match")
	}
	if node.HasProductType("webinar") {
		t.Fatal("unexpected match for unknown type")
	}
}
