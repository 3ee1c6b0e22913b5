package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/inkwellcms/inkwell/internal/admin/messages"
)

// FlashButton is an action link rendered alongside a flash message.
type FlashButton struct {
	URL   string
	Label string
}

// Flash is one notification rendered at the top of a page.
type Flash struct {
	Level   string
	Text    string
	Buttons []FlashButton
}

// FlashesFromMessages converts popped queue entries into renderable flashes.
func FlashesFromMessages(popped []messages.Message) []Flash {
	if len(popped) == 0 {
		return nil
	}
	flashes := make([]Flash, 0, len(popped))
	for _, msg := range popped {
		flash := Flash{Level: string(msg.Level), Text: msg.Text}
		for _, button := range msg.Buttons {
			flash.Buttons = append(flash.Buttons, FlashButton{URL: button.URL, Label: button.Label})
		}
		flashes = append(flashes, flash)
	}
	return flashes
}

// FlashList renders queued notifications. Empty input renders nothing.
func FlashList(flashes []Flash) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(flashes) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, "<ul class=\"flashes\">"); err != nil {
			return err
		}
		for _, flash := range flashes {
			if _, err := fmt.Fprintf(w, "<li class=\"flash flash-%s\" role=\"status\">%s", html.EscapeString(flash.Level), html.EscapeString(flash.Text)); err != nil {
				return err
			}
			for _, button := range flash.Buttons {
				if _, err := fmt.Fprintf(w, " <a class=\"flash-action\" href=\"%s\">%s</a>", html.EscapeString(button.URL), html.EscapeString(button.Label)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</li>"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>")
		return err
	})
}
