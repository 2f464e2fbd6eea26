package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/replacer/pkg/text"
)

func ExampleReplace() {
	fmt.Println(text.Replace("the cat sat on the mat", "the", "a"))
	fmt.Println(text.Replace("aaaa", "aa", "b"))

	// Output:
	// a cat sat on a mat
	// bb
}

func ExampleSimpleTextReplacer_ReplaceText() {
	replacer := text.NewSimpleTextReplacer()

	rules := []text.ReplacementRule{
		{FromText: "World", ToText: "Universe"},
		{FromText: "Hello", ToText: "Hi"},
	}

	result, err := replacer.ReplaceText(context.Background(), strings.NewReader("Hello World!"), rules)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Original: %s\n", result.OriginalContent)
	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// Original: Hello World!
	// Modified: Hi Universe!
	// Changes: 2
	// Was Modified: true
}
