package ui

import (
	"sync"
	"testing"
)

func TestGetViewContext_Singleton(t *testing.T) {
	if GetViewContext() != GetViewContext() {
		t.Error("GetViewContext should return the same instance")
	}
}

func TestViewContext_UpdateTerminalSize(t *testing.T) {
	ctx := GetViewContext()
	ctx.UpdateTerminalSize(120, 40)

	if ctx.TerminalWidth != 120 || ctx.TerminalHeight != 40 {
		t.Errorf("Terminal = %dx%d, want 120x40", ctx.TerminalWidth, ctx.TerminalHeight)
	}

	expectedContent := 40 - HeaderHeight - FooterHeight
	if ctx.ContentHeight != expectedContent {
		t.Errorf("Expected ContentHeight %d, got %d", expectedContent, ctx.ContentHeight)
	}

	expectedIntel := 120 / IntelWidthRatio
	if ctx.IntelWidth != expectedIntel {
		t.Errorf("Expected IntelWidth %d, got %d", expectedIntel, ctx.IntelWidth)
	}
	if ctx.ChatWidth != 120-expectedIntel {
		t.Errorf("Expected ChatWidth %d, got %d", 120-expectedIntel, ctx.ChatWidth)
	}
}

func TestViewContext_MinimumSize(t *testing.T) {
	ctx := GetViewContext()
	ctx.UpdateTerminalSize(10, 5)

	if ctx.TerminalWidth != MinTerminalWidth {
		t.Errorf("TerminalWidth = %d, want %d", ctx.TerminalWidth, MinTerminalWidth)
	}
	if ctx.TerminalHeight != MinTerminalHeight {
		t.Errorf("TerminalHeight = %d, want %d", ctx.TerminalHeight, MinTerminalHeight)
	}
	if ctx.ContentHeight <= 0 {
		t.Errorf("ContentHeight = %d, should stay positive", ctx.ContentHeight)
	}
}

func TestViewContext_InnerDimensions(t *testing.T) {
	ctx := GetViewContext()

	tests := []struct {
		panel int
		want  int
	}{
		{100, 98},
		{2, 0},
		{1, 0},
	}

	for _, tt := range tests {
		if got := ctx.InnerWidth(tt.panel); got != tt.want {
			t.Errorf("InnerWidth(%d) = %d, want %d", tt.panel, got, tt.want)
		}
		if got := ctx.InnerHeight(tt.panel); got != tt.want {
			t.Errorf("InnerHeight(%d) = %d, want %d", tt.panel, got, tt.want)
		}
	}
}

func TestViewContext_ConcurrentUpdates(t *testing.T) {
	ctx := GetViewContext()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ctx.UpdateTerminalSize(80+n, 24+n)
		}(i)
	}
	wg.Wait()

	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if ctx.IntelWidth+ctx.ChatWidth != ctx.TerminalWidth {
		t.Errorf("panel widths %d+%d should add up to %d", ctx.IntelWidth, ctx.ChatWidth, ctx.TerminalWidth)
	}
}
