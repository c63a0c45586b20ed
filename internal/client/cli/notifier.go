package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/opmlogin/internal/client/form"
)

// toastNotifier prints toasts as a single highlighted line.
type toastNotifier struct {
	out io.Writer
}

func (n *toastNotifier) Notify(_ context.Context, note form.Notification) {
	fmt.Fprintf(n.out, "[%s] %s. %s\n", note.Status, note.Title, note.Description)
}
