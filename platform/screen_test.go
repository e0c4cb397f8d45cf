package platform

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/soocke/rect-select-go/domain/source"
)

func TestScreenLoader_ResolvesCapture(t *testing.T) {
	want := image.NewRGBA(image.Rect(0, 0, 3, 2))
	l := &ScreenLoader{grab: func() (*image.RGBA, error) { return want, nil }}
	res, err := l.Load(context.Background(), "ignored").Wait(context.Background())
	if err != nil || res.Image != image.Image(want) {
		t.Fatalf("unexpected result %+v err=%v", res, err)
	}
}

func TestScreenLoader_WrapsGrabError(t *testing.T) {
	l := &ScreenLoader{grab: func() (*image.RGBA, error) { return nil, errors.New("no display") }}
	res, err := l.Load(context.Background(), "").Wait(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(res.Err, source.ErrImageLoad) || res.Loaded() {
		t.Fatalf("expected ErrImageLoad, got %v", res.Err)
	}
}
