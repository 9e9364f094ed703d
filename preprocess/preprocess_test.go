package preprocess

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func gradientRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x + y) * 255 / (w + h)),
				A: 255,
			})
		}
	}
	return img
}

func assertTensorShape(t *testing.T, tensor *Tensor) {
	t.Helper()
	assert.Equal(t, [4]int64{1, 224, 224, 3}, tensor.Shape)
	require.Len(t, tensor.Data, TensorSize)
	for i, v := range tensor.Data {
		if v < 0.0 || v > 1.0 {
			t.Fatalf("value %f at index %d outside [0, 1]", v, i)
		}
	}
}

func TestNormalizeShapes(t *testing.T) {
	cases := map[string][]byte{
		"png 100x100":      encodePNG(t, gradientRGBA(100, 100)),
		"png 640x480":      encodePNG(t, gradientRGBA(640, 480)),
		"png 50x50":        encodePNG(t, gradientRGBA(50, 50)),
		"png tall 60x900":  encodePNG(t, gradientRGBA(60, 900)),
		"jpeg 300x200":     encodeJPEG(t, gradientRGBA(300, 200)),
		"jpeg huge 1024px": encodeJPEG(t, gradientRGBA(1024, 768)),
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			tensor, err := Normalize(data)
			require.NoError(t, err)
			assertTensorShape(t, tensor)
		})
	}
}

func TestNormalizeGrayscale(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 120, 120))
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 2)})
		}
	}

	tensor, err := Normalize(encodePNG(t, img))
	require.NoError(t, err)
	assertTensorShape(t, tensor)

	// Gray pixels widen to equal R, G and B.
	assert.Equal(t, tensor.Data[0], tensor.Data[1])
	assert.Equal(t, tensor.Data[1], tensor.Data[2])
}

func TestNormalizeAlphaFlattened(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 128, B: 0, A: 128})
		}
	}

	tensor, err := Normalize(encodePNG(t, img))
	require.NoError(t, err)
	assertTensorShape(t, tensor)
}

func TestNormalizeUnreadable(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":     {},
		"text":      []byte("definitely not an image"),
		"truncated": encodePNG(t, gradientRGBA(100, 100))[:20],
	} {
		t.Run(name, func(t *testing.T) {
			tensor, err := Normalize(data)
			assert.Nil(t, tensor)
			assert.ErrorIs(t, err, ErrUnreadable)
		})
	}
}

func TestNormalizeTooSmall(t *testing.T) {
	tensor, err := Normalize(encodePNG(t, gradientRGBA(10, 10)))
	assert.Nil(t, tensor)

	var tooSmall *TooSmallError
	require.True(t, errors.As(err, &tooSmall))
	assert.Equal(t, 10, tooSmall.Width)
	assert.Equal(t, 10, tooSmall.Height)
	assert.Contains(t, err.Error(), "too small")
}

func TestNormalizeTooSmallOneDimension(t *testing.T) {
	_, err := Normalize(encodePNG(t, gradientRGBA(200, 30)))
	var tooSmall *TooSmallError
	require.True(t, errors.As(err, &tooSmall))
	assert.Equal(t, 200, tooSmall.Width)
	assert.Equal(t, 30, tooSmall.Height)
}

func TestNormalizeDeterministic(t *testing.T) {
	data := encodeJPEG(t, gradientRGBA(333, 217))

	first, err := Normalize(data)
	require.NoError(t, err)
	second, err := Normalize(data)
	require.NoError(t, err)

	assert.Equal(t, first.Shape, second.Shape)
	assert.Equal(t, first.Data, second.Data)
}
