package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/erinpentecost/texkit/internal/codec"
	"github.com/erinpentecost/texkit/internal/config"
	"github.com/erinpentecost/texkit/internal/pixfmt"
	"github.com/erinpentecost/texkit/internal/texio"
	"github.com/erinpentecost/texkit/internal/texture"
	"github.com/spf13/pflag"
	"go.coder.com/cli"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

type convertCmd struct {
	profileFlags
	format   string
	mips     int
	filter   string
	ext      string
	out      string
	workers  int
	compress bool
	pot      bool
}

func (c *convertCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "convert",
		Usage: "[flags] FILE...",
		Desc:  "Convert textures between formats, optionally compressing and building mips.",
	}
}

func (c *convertCmd) RegisterFlags(fl *pflag.FlagSet) {
	c.register(fl)
	fl.StringVarP(&c.format, "format", "f", "", "output pixel format: rgba, bgra, bc1 or bc3 (default: keep)")
	fl.IntVarP(&c.mips, "mips", "m", 0, "mip levels to build, 0 for a full chain")
	fl.StringVar(&c.filter, "filter", "catmullrom", "mip filter: catmullrom, bilinear, approx-bilinear or nearest")
	fl.StringVarP(&c.ext, "ext", "e", "dds", "output codec extension: dds, png, jpg, gif, bmp or tga")
	fl.StringVarP(&c.out, "out", "o", ".", "output directory")
	fl.IntVarP(&c.workers, "workers", "j", 0, "files converted in parallel (default: profile or CPU count)")
	fl.BoolVar(&c.compress, "zstd", false, "zstd compress the output files")
	fl.BoolVar(&c.pot, "pot", false, "rescale to power of two edges")
}

// job converts one file.
type job struct {
	in      string
	out     string
	format  pixfmt.Format
	mips    int
	rebuild bool
	filter  draw.Interpolator
	procs   []texture.Processor
	codec   codec.Codec
}

func (c *convertCmd) Run(fl *pflag.FlagSet) {
	if fl.NArg() == 0 {
		fl.Usage()
		os.Exit(1)
	}
	prof, flags, err := c.load(fl)
	if err != nil {
		fail(err)
	}
	c.override(fl, &prof)
	if err := prof.Validate(); err != nil {
		fail(err)
	}

	reg := codec.Default(flags)
	format, _ := prof.OutputFormat()
	filter, _ := texture.Filter(prof.Output.Filter)
	procs, _ := prof.Processors()
	out, err := reg.ByName(prof.Output.Ext)
	if err != nil {
		fail(err)
	}
	if err := os.MkdirAll(c.out, 0o777); err != nil {
		fail(err)
	}

	var jobs []*job
	for _, in := range fl.Args() {
		name := strings.TrimSuffix(filepath.Base(texio.TrimCompression(in)), filepath.Ext(texio.TrimCompression(in)))
		path := filepath.Join(c.out, name+"."+out.Extensions()[0])
		if c.compress {
			path += ".zst"
		}
		jobs = append(jobs, &job{
			in:      in,
			out:     path,
			format:  format,
			mips:    prof.Output.Mips,
			rebuild: format != pixfmt.Unknown || prof.Output.Mips > 0 || len(procs) > 0 || !out.SupportsMipMaps(),
			filter:  filter,
			procs:   procs,
			codec:   out,
		})
	}

	fmt.Printf("Converting %d files with %d workers...\n", len(jobs), prof.Workers)
	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(prof.Workers)
	for _, j := range jobs {
		g.Go(func() error { return j.run(gctx, reg) })
	}
	if err := g.Wait(); err != nil {
		fail(err)
	}
	fmt.Printf("Done converting %d files.\n", len(jobs))
}

// override copies explicitly set flags into prof.
func (c *convertCmd) override(fl *pflag.FlagSet, prof *config.Profile) {
	if fl.Changed("format") {
		prof.Output.Format = c.format
	}
	if fl.Changed("mips") {
		prof.Output.Mips = c.mips
	}
	if fl.Changed("filter") {
		prof.Output.Filter = c.filter
	}
	if fl.Changed("ext") {
		prof.Output.Ext = c.ext
	}
	if fl.Changed("workers") {
		prof.Workers = c.workers
	}
	if fl.Changed("pot") {
		prof.Output.PowerOfTwo = c.pot
	}
}

func (j *job) run(ctx context.Context, reg *codec.Registry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img, err := j.decode(reg)
	if err != nil {
		return fmt.Errorf("decode %q: %w", j.in, err)
	}
	if j.rebuild {
		if img, err = j.convert(img); err != nil {
			return fmt.Errorf("convert %q: %w", j.in, err)
		}
	}

	w, err := texio.Create(j.out)
	if err != nil {
		return err
	}
	if err := j.codec.Encode(w, img); err != nil {
		w.Close()
		return fmt.Errorf("encode %q: %w", j.out, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("write %q: %w", j.out, err)
	}
	fmt.Printf("Wrote %q (%s).\n", j.out, img)
	return nil
}

func (j *job) decode(reg *codec.Registry) (*texture.Image, error) {
	f, err := texio.Open(j.in)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := reg.Detect(f)
	if err != nil {
		// TGA files that fail the header check can still be picked by name.
		if c, err = reg.ByExtension(texio.TrimCompression(j.in)); err != nil {
			return nil, err
		}
	}
	return c.Decode(f)
}

// convert rebuilds every array item (or cube face) of img in the
// requested format and mip count. Volumes and multi-surface images the
// target codec cannot hold are errors rather than cropped to one slice.
func (j *job) convert(img *texture.Image) (*texture.Image, error) {
	info := img.Info()
	if info.Type == texture.Texture3D && info.Depth > 1 {
		return nil, fmt.Errorf("cannot rebuild volume %s", img)
	}
	if info.ArrayCount > 1 && !j.codec.SupportsMultipleFrames() {
		return nil, fmt.Errorf("%w: %s cannot store %s", codec.ErrMultipleFrames, j.codec.Name(), img)
	}
	typ := info.Type
	if typ == texture.Texture3D {
		typ = texture.Texture2D
	}

	items := make([]image.Image, info.ArrayCount)
	for i := range items {
		base, err := texture.ToNRGBA(img.Buffer(0, i))
		if err != nil {
			return nil, err
		}
		if base, err = texture.Apply(base, j.procs...); err != nil {
			return nil, err
		}
		items[i] = base
	}

	format := j.format
	if format == pixfmt.Unknown {
		format = pixfmt.R8G8B8A8_UNorm
	}
	mips := j.mips
	if !j.codec.SupportsMipMaps() {
		mips = 1
	}
	return texture.FromImages(typ, items, texture.Options{Format: format, MipCount: mips, Filter: j.filter})
}
