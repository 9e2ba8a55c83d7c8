package console

import (
	"context"
	"strings"
	"testing"
)

func TestRenderPageUsesEmbeddedTemplates(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		t.Fatalf("NewTemplateRenderer returned error: %v", err)
	}
	ctrl := newTestController(t, Options{
		Backend:  &fakeBackend{},
		Renderer: renderer,
	})
	ctrl.Notify("Record created successfully", KindSuccess, 0)

	html, err := ctrl.RenderPage()
	if err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	if !strings.Contains(html, "Record created successfully") {
		t.Fatalf("expected banner rendered, got:\n%s", html)
	}
	if !strings.Contains(html, `data-theme="light"`) {
		t.Fatalf("expected theme attribute rendered")
	}
}

func TestRenderPageHonorsManifestTemplate(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		t.Fatalf("NewTemplateRenderer returned error: %v", err)
	}
	ctrl := newTestController(t, Options{
		Backend:   &fakeBackend{},
		Renderer:  renderer,
		ProductID: "prod-5",
		Manifest:  &PageManifest{Version: "1", View: ViewProduct, ProductID: "prod-5", Template: "console/product"},
	})
	ctrl.ApplyStatus(context.Background(), ProductStatusSnapshot{Status: "delivered"})

	html, err := ctrl.RenderPage()
	if err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	if !strings.Contains(html, "badge-info") {
		t.Fatalf("expected delivered badge class, got:\n%s", html)
	}
}

func TestRenderPageWithoutRendererFails(t *testing.T) {
	ctrl := newTestController(t, Options{Backend: &fakeBackend{}})
	if _, err := ctrl.RenderPage(); err == nil {
		t.Fatalf("expected error without renderer")
	}
}
