package console

import "context"

// OpenModal loads a server-rendered fragment into the shared modal. The
// fragment body is injected verbatim; the backend is trusted to return safe
// markup. A failed load keeps the modal open with an inline error.
func (c *Controller) OpenModal(ctx context.Context, fragmentURL string) error {
	c.mu.Lock()
	c.doc.Modal = ModalView{State: ModalLoading, Source: fragmentURL}
	c.mu.Unlock()

	content, err := c.opts.Backend.Fragment(ctx, fragmentURL)
	if err != nil {
		c.mu.Lock()
		c.doc.Modal = ModalView{
			State:   ModalFailed,
			Source:  fragmentURL,
			Content: "<p>Failed to load content. Please try again.</p>",
		}
		c.mu.Unlock()
		c.telemetry.Record(ctx, "console.modal.error", map[string]any{
			"source": fragmentURL,
			"error":  err.Error(),
		})
		return err
	}

	c.mu.Lock()
	c.doc.Modal = ModalView{State: ModalReady, Source: fragmentURL, Content: content}
	c.mu.Unlock()
	c.telemetry.Record(ctx, "console.modal.open", map[string]any{"source": fragmentURL})
	return nil
}

// CloseModal hides the modal and drops its content.
func (c *Controller) CloseModal() {
	c.mu.Lock()
	c.doc.Modal = ModalView{State: ModalHidden}
	c.mu.Unlock()
}

// Modal returns the current modal view.
func (c *Controller) Modal() ModalView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Modal
}
