/*
Copyright © 2021 National Library of Norway

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/crawlkeep/gowarc"
	"github.com/crawlkeep/gowarc/streams"
)

var recordTypeColor = map[gowarc.RecordType]*color.Color{
	gowarc.Warcinfo: color.New(color.FgCyan),
	gowarc.Response: color.New(color.FgGreen),
	gowarc.Request:  color.New(color.FgYellow),
	gowarc.Resource: color.New(color.FgMagenta),
	gowarc.Revisit:  color.New(color.FgBlue),
}

func newCatCommand() *cobra.Command {
	var offset int64
	var count int
	var showHeader bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "cat <file>",
		Short: "Print records from a WARC file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(args[0], offset, count, showHeader, strict)
		},
	}

	cmd.Flags().Int64VarP(&offset, "offset", "o", 0, "skip this many records before printing")
	cmd.Flags().IntVarP(&count, "count", "c", 0, "maximum number of records to print (0 = all)")
	cmd.Flags().BoolVar(&showHeader, "header", false, "print WARC headers")
	cmd.Flags().BoolVarP(&strict, "strict", "s", false, "strict parsing")

	return cmd
}

func runCat(fileName string, offset int64, count int, showHeader, strict bool) error {
	stream, err := streams.Open(fileName)
	if err != nil {
		return err
	}
	defer stream.Close()

	it := gowarc.NewArchiveIterator(stream, gowarc.WithStrict(strict))
	defer it.Close()

	var skipped int64
	printed := 0
	for {
		rec, err := it.Next()
		if errors.Is(err, gowarc.ErrSkipped) {
			continue
		}
		if errors.Is(err, gowarc.ErrEndOfStream) {
			break
		}
		if err != nil {
			return err
		}

		if skipped < offset {
			skipped++
			continue
		}

		printRecord(rec, showHeader)
		printed++
		if count > 0 && printed >= count {
			break
		}
	}
	return nil
}

func printRecord(rec *gowarc.WarcRecord, showHeader bool) {
	c, ok := recordTypeColor[rec.Type()]
	label := rec.Type().String()
	if ok {
		label = c.Sprint(label)
	}

	targetURI, _ := rec.WarcHeaders().Get(gowarc.WarcTargetURI)
	fmt.Printf("%d\t%s\t%s\n", rec.StreamPos(), label, targetURI)

	if showHeader {
		fmt.Print(string(rec.WarcHeaders().Bytes()))
		fmt.Println()
	}

	if _, err := io.Copy(io.Discard, rec.Reader()); err != nil {
		logrus.WithError(err).Warn("error draining record payload")
	}
}
