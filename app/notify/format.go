package notify

import (
	"fmt"

	"github.com/ymaor/war-monitor/app/classify"
	"github.com/ymaor/war-monitor/app/news"
)

// FormatAlert renders one item as a Markdown alert message.
func FormatAlert(item news.Item) string {
	regionTag := ""
	if item.Region != "" && item.Region != "all" {
		regionTag = "📍 " + item.Region
	}

	return fmt.Sprintf("%s *[%s]* %s\n🗞 %s %s\n%s\n🔗 [קרא עוד](%s)",
		classify.LevelEmoji(item.Level),
		classify.LevelLabel(item.Level),
		item.Title,
		item.Source,
		regionTag,
		item.Description,
		item.URL)
}
