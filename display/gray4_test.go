package display

import (
	"image"
	"image/color"
	"testing"
)

func TestGray4RGBA(t *testing.T) {
	tests := []struct {
		name string
		gray Gray4
		want uint32
	}{
		{"black", Gray4{Y: 0}, 0x0000},
		{"mid gray", Gray4{Y: 8}, 0x8888},
		{"white", Gray4{Y: 15}, 0xFFFF},
		{"mask ignored", Gray4{Y: 0x5F}, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.gray.RGBA()
			if r != tt.want || g != tt.want || b != tt.want || a != 0xFFFF {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, ffff)",
					r, g, b, a, tt.want, tt.want, tt.want)
			}
		})
	}
}

func TestGray4ModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  uint8
	}{
		{"gray4 passthrough", Gray4{Y: 7}, 7},
		{"black", color.Black, 0},
		{"white", color.White, 15},
		{"identicon background", color.RGBA{240, 240, 240, 255}, 15},
		{"identicon foreground", color.RGBA{233, 150, 150, 255}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Gray4Model.Convert(tt.input).(Gray4)
			if got.Y != tt.want {
				t.Errorf("Gray4Model.Convert(%v).Y = %d, want %d", tt.input, got.Y, tt.want)
			}
		})
	}
}

func TestNewFrame(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantPanic  bool
		wantStride int
		wantPixLen int
	}{
		{"256x64", image.Rect(0, 0, 256, 64), false, 128, 8192},
		{"128x64", image.Rect(0, 0, 128, 64), false, 64, 4096},
		{"offset rect", image.Rect(10, 20, 14, 22), false, 2, 4},
		{"odd width panics", image.Rect(0, 0, 5, 2), true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); (r != nil) != tt.wantPanic {
					t.Errorf("panic = %v, want panic = %v", r, tt.wantPanic)
				}
			}()

			f := NewFrame(tt.rect)
			if f.Stride != tt.wantStride {
				t.Errorf("Stride = %d, want %d", f.Stride, tt.wantStride)
			}
			if len(f.Pix) != tt.wantPixLen {
				t.Errorf("len(Pix) = %d, want %d", len(f.Pix), tt.wantPixLen)
			}
		})
	}
}

func TestFramePacking(t *testing.T) {
	f := NewFrame(image.Rect(0, 0, 4, 1))
	for x, v := range []uint8{5, 10, 3, 12} {
		f.SetGray4(x, 0, Gray4{Y: v})
	}

	if f.Pix[0] != 0x5A || f.Pix[1] != 0x3C {
		t.Errorf("Pix = %x, want 5a3c", f.Pix)
	}
	for x, want := range []uint8{5, 10, 3, 12} {
		if got := f.Gray4At(x, 0).Y; got != want {
			t.Errorf("Gray4At(%d, 0) = %d, want %d", x, got, want)
		}
	}
}

func TestFrameOffsetAndBounds(t *testing.T) {
	f := NewFrame(image.Rect(100, 50, 104, 52))
	f.SetGray4(101, 51, Gray4{Y: 11})
	f.SetGray4(99, 50, Gray4{Y: 15})

	if f.Pix[2] != 0x0B {
		t.Errorf("Pix[2] = 0x%02X, want 0x0B", f.Pix[2])
	}
	if got := f.Gray4At(99, 50).Y; got != 0 {
		t.Errorf("Gray4At(99, 50) = %d, want 0 (out of bounds)", got)
	}
	if f.Pix[0] != 0 {
		t.Errorf("out-of-bounds write changed Pix[0] to 0x%02X", f.Pix[0])
	}

	f.Set(100, 50, color.White)
	if got, ok := f.At(100, 50).(Gray4); !ok || got.Y != 15 {
		t.Errorf("At(100, 50) = %v, want Gray4{15}", f.At(100, 50))
	}

	f.Clear()
	for i, b := range f.Pix {
		if b != 0 {
			t.Errorf("Pix[%d] = 0x%02X after Clear", i, b)
		}
	}
}
