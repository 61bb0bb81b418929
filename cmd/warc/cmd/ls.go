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

	"github.com/spf13/cobra"

	"github.com/crawlkeep/gowarc"
	"github.com/crawlkeep/gowarc/streams"
)

func newLsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <file>",
		Short: "List record offsets, types and target URIs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs(args[0])
		},
	}
	return cmd
}

func runLs(fileName string) error {
	stream, err := streams.Open(fileName)
	if err != nil {
		return err
	}
	defer stream.Close()

	it := gowarc.NewArchiveIterator(stream)
	defer it.Close()

	count := 0
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
		targetURI, _ := rec.WarcHeaders().Get(gowarc.WarcTargetURI)
		fmt.Printf("%12d  %-12s  %s\n", rec.StreamPos(), rec.Type(), targetURI)
		if _, err := io.Copy(io.Discard, rec.Reader()); err != nil {
			return err
		}
		count++
	}
	fmt.Printf("%d records\n", count)
	return nil
}
