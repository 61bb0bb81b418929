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

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/crawlkeep/gowarc"
	"github.com/crawlkeep/gowarc/streams"
)

func newVerifyCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Validate block and payload digests for every record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args[0], strict)
		},
	}
	cmd.Flags().BoolVarP(&strict, "strict", "s", false, "exit non-zero on the first digest mismatch")
	return cmd
}

func runVerify(fileName string, strict bool) error {
	stream, err := streams.Open(fileName)
	if err != nil {
		return err
	}
	defer stream.Close()

	policy := gowarc.ErrWarn
	if strict {
		policy = gowarc.ErrFail
	}

	it := gowarc.NewArchiveIterator(stream, gowarc.WithStrict(strict))
	defer it.Close()

	ok, bad := 0, 0
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

		v, err := rec.ValidateDigest(policy)
		if err != nil {
			bad++
			logrus.WithError(err).WithField("offset", rec.StreamPos()).Warn("digest validation failed")
			if strict {
				return err
			}
			continue
		}
		if v.Valid() {
			ok++
		} else {
			bad++
			logrus.WithField("offset", rec.StreamPos()).Warn(v.String())
		}
	}

	fmt.Printf("%s %d  %s %d\n", color.GreenString("ok:"), ok, color.RedString("bad:"), bad)
	if bad > 0 && strict {
		return fmt.Errorf("gowarc: %d records failed digest validation", bad)
	}
	return nil
}
