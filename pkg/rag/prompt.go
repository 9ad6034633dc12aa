package rag

import (
	"fmt"
	"strings"
)

// promptTemplate directs the model to answer only from the supplied
// reference material and to state inability to answer otherwise.
const promptTemplate = `你是一个专业客服助手，请根据以下参考资料回答用户问题。如果资料中没有相关信息，请回答“抱歉，我无法回答该问题”。

参考资料：
%s

用户问题：%s

回答：`

// buildPrompt joins the retrieved context entries with a blank line and
// embeds them, together with the literal query, into the instruction
// template. Context order is preserved: it reflects similarity ranking.
func buildPrompt(query string, contexts []string) string {
	return fmt.Sprintf(promptTemplate, strings.Join(contexts, "\n\n"), query)
}
