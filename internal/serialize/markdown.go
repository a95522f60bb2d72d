package serialize

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

// Markdown converts canonical content to CommonMark
func Markdown(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	md, err := mdConverter.ConvertString(content)
	if err != nil {
		return "", fmt.Errorf("failed to convert content to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}
