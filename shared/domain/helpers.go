package domain

import (
	"fmt"
	"strings"
	"time"
)

// for debug
func (m *Message) String() string {
	return fmt.Sprintf("[id:%d, author:%s, text:%s, created:%s]", m.Id, m.Author, m.Text, m.CreatedAt.Format(time.StampMilli))
}

func (d *Discussion) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[id:%d, title:%s, author:%s, replies:%d, views:%d, last_active:%s, messages:[",
		d.Id, d.Title, d.Author, d.ReplyCount, d.ViewCount, d.LastActiveAt.Format(time.StampMilli))
	for i := range d.Messages {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.Messages[i].String())
	}
	b.WriteString("]]")
	return b.String()
}
