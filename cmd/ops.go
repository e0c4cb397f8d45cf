package cmd

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/soocke/rect-select-go/domain/rect"
	"github.com/soocke/rect-select-go/domain/rectops"
	"github.com/soocke/rect-select-go/ui/images"

	// decoders for inputs beyond what imaging registers
	_ "github.com/soocke/rect-select-go/domain/source"
)

var (
	opRect      string
	cropMax     int
	maskFeather int
	maskInvert  bool
	maskCombine string
	maskBase    string
	fillColor   string
	fillOpacity float64
	fillMode    string
	fillThick   int
	fillFeather int
)

var cropCmd = &cobra.Command{
	Use:   "crop <in> <out>",
	Short: "Crop an image file to a rectangle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, r, err := openWithRect(args[0])
		if err != nil {
			return err
		}
		out, used, err := rectops.Crop(img, r)
		if err != nil {
			return err
		}
		logger.Info("cropped", "rect", used.String())
		if cropMax > 0 {
			return imaging.Save(images.ScaleToFit(out, cropMax, cropMax), args[1])
		}
		return imaging.Save(out, args[1])
	},
}

var maskCmd = &cobra.Command{
	Use:   "mask <in> <out>",
	Short: "Write a grayscale mask of a rectangle sized like the input image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, r, err := openWithRect(args[0])
		if err != nil {
			return err
		}
		combine, err := rectops.ParseCombine(maskCombine)
		if err != nil {
			return err
		}
		opts := rectops.MaskOptions{Feather: maskFeather, Invert: maskInvert, Combine: combine}
		if maskBase != "" {
			base, err := imaging.Open(maskBase)
			if err != nil {
				return err
			}
			opts.Existing = toGray(base)
		}
		b := img.Bounds()
		m, err := rectops.Mask(b.Dx(), b.Dy(), r, opts)
		if err != nil {
			return err
		}
		return imaging.Save(m, args[1])
	},
}

var fillCmd = &cobra.Command{
	Use:   "fill <in> <out>",
	Short: "Paint a rectangle onto an image file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, r, err := openWithRect(args[0])
		if err != nil {
			return err
		}
		opts := rectops.DefaultFillOptions()
		if opts.Color, err = rectops.ParseColor(fillColor); err != nil {
			return err
		}
		if opts.Mode, err = rectops.ParseFillMode(fillMode); err != nil {
			return err
		}
		opts.Opacity, opts.Thickness, opts.Feather = fillOpacity, fillThick, fillFeather
		out, err := rectops.Fill(img, r, opts)
		if err != nil {
			return err
		}
		return imaging.Save(out, args[1])
	},
}

func init() {
	for _, c := range []*cobra.Command{cropCmd, maskCmd, fillCmd} {
		c.Flags().StringVarP(&opRect, "rect", "r", "", `rectangle "x,y,w,h" (default: the whole image)`)
		rootCmd.AddCommand(c)
	}
	cropCmd.Flags().IntVar(&cropMax, "max-size", 0, "shrink the crop to fit a square of this size (0 keeps it)")

	mf := maskCmd.Flags()
	mf.IntVar(&maskFeather, "feather", 0, fmt.Sprintf("blur radius in pixels (0-%d)", rectops.MaxFeather))
	mf.BoolVar(&maskInvert, "invert", false, "invert the mask")
	mf.StringVar(&maskCombine, "combine", string(rectops.CombineReplace), "how to merge with --base: replace, union, intersect, subtract, multiply")
	mf.StringVar(&maskBase, "base", "", "existing mask image to combine with")

	ff := fillCmd.Flags()
	ff.StringVar(&fillColor, "color", "#ff0000", "fill color (#rgb, #rrggbb or #rrggbbaa)")
	ff.Float64Var(&fillOpacity, "opacity", 1, "fill opacity (0-1)")
	ff.StringVar(&fillMode, "mode", string(rectops.FillSolid), "fill or outline")
	ff.IntVar(&fillThick, "thickness", 4, "outline thickness in pixels")
	ff.IntVar(&fillFeather, "feather", 0, "soften the painted edge by this radius")
}

// openWithRect reads path and the --rect flag. Without --rect the whole
// image is used.
func openWithRect(path string) (image.Image, rect.Rect, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, rect.Rect{}, err
	}
	if opRect == "" {
		return img, rectops.WholeImage(img), nil
	}
	r, err := rect.Parse(opRect)
	if err != nil {
		return nil, rect.Rect{}, err
	}
	return img, r, nil
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}
