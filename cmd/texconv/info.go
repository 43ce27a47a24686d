package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/erinpentecost/texkit/internal/codec"
	"github.com/erinpentecost/texkit/internal/dds"
	"github.com/erinpentecost/texkit/internal/texio"
	"github.com/erinpentecost/texkit/internal/texture"
	"github.com/spf13/pflag"
	"go.coder.com/cli"
	"golang.org/x/term"
)

type infoCmd struct {
	profileFlags
}

func (c *infoCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "info",
		Usage: "[flags] FILE...",
		Desc:  "Print the shape and pixel format of texture files.",
	}
}

func (c *infoCmd) RegisterFlags(fl *pflag.FlagSet) {
	c.register(fl)
}

type infoRow struct {
	path   string
	codec  string
	info   texture.Info
	header string
}

func (c *infoCmd) Run(fl *pflag.FlagSet) {
	if fl.NArg() == 0 {
		fl.Usage()
		os.Exit(1)
	}
	_, flags, err := c.load(fl)
	if err != nil {
		fail(err)
	}
	reg := codec.Default(flags)

	var rows []infoRow
	for _, path := range fl.Args() {
		row, err := inspect(reg, flags, path)
		if err != nil {
			fail(fmt.Errorf("inspect %q: %w", path, err))
		}
		rows = append(rows, row)
	}
	printInfo(os.Stdout, rows, term.IsTerminal(int(os.Stdout.Fd())))
}

func inspect(reg *codec.Registry, flags dds.Flags, path string) (infoRow, error) {
	f, err := texio.Open(path)
	if err != nil {
		return infoRow{}, err
	}
	defer f.Close()

	c, err := reg.Detect(f)
	if err != nil {
		return infoRow{}, err
	}
	row := infoRow{path: path, codec: c.Name()}

	// DDS headers describe everything without touching the pixels.
	if _, ok := c.(dds.Codec); ok {
		meta, err := dds.Codec{Flags: flags}.ReadMetadata(f)
		if err != nil {
			return infoRow{}, err
		}
		row.info = meta.Info
		row.header = "legacy"
		if meta.DX10 != nil {
			row.header = "dx10"
		}
		if meta.Conversion&dds.ConvExpand != 0 {
			row.header += " expanded"
		}
		return row, nil
	}

	img, err := c.Decode(f)
	if err != nil {
		return infoRow{}, err
	}
	row.info = img.Info()
	return row, nil
}

func printInfo(w io.Writer, rows []infoRow, table bool) {
	if !table {
		for _, r := range rows {
			i := r.info
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
				r.path, r.codec, i.Type, i.Format, i.Width, i.Height, i.Depth, i.MipCount, i.ArrayCount, r.header)
		}
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tCODEC\tTYPE\tFORMAT\tSIZE\tMIPS\tARRAY\tHEADER")
	for _, r := range rows {
		i := r.info
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%dx%dx%d\t%d\t%d\t%s\n",
			r.path, r.codec, i.Type, i.Format, i.Width, i.Height, i.Depth, i.MipCount, i.ArrayCount, r.header)
	}
	tw.Flush()
}
