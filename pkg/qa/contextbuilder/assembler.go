package contextbuilder

import (
	"fmt"
	"strings"

	"textbook-qa-be/internal/constant"
	"textbook-qa-be/internal/entity"
)

// BlockSeparator delimits passages inside the assembled context so the model
// can tell where one excerpt ends and the next begins.
const BlockSeparator = "=========="

// BuildContext renders retrieved passages into the single context string fed
// to the model. Passages keep their retrieval order. With no passages at all,
// the sentinel is returned so the prompt can still be assembled.
func BuildContext(passages []entity.Passage) string {
	if len(passages) == 0 {
		return constant.NoRelevantContent
	}

	var sb strings.Builder
	for i, passage := range passages {
		if i > 0 {
			sb.WriteString("\n" + BlockSeparator + "\n")
		}
		sb.WriteString(fmt.Sprintf("[Passage %d | Page %d", i+1, passage.PageNumber))
		if passage.Section != "" {
			sb.WriteString(" | " + passage.Section)
		}
		sb.WriteString("]\n")
		sb.WriteString(passage.Content)
	}

	return sb.String()
}
