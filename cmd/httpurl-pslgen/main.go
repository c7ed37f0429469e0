/*
 * Copyright (c) 2018 The Go Authors. All rights reserved.
 * Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.
 */

// Command httpurl-pslgen downloads the public suffix list from
// publicsuffix.org and rewrites it into the gzipped, length-prefixed
// binary format publicsuffix.Default loads at runtime. It is meant to be
// run by hand to refresh publicsuffix/data/public_suffix_list.dat.gz, not
// as part of any build.
package main

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/urfave/cli"
)

const defaultSourceURL = "https://publicsuffix.org/list/public_suffix_list.dat"

func main() {
	app := cli.NewApp()
	app.Name = "httpurl-pslgen"
	app.Usage = "regenerate the bundled public suffix snapshot"
	app.UsageText = "httpurl-pslgen [global options]"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "source",
			Usage: "URL of the public_suffix_list.dat to fetch",
			Value: defaultSourceURL,
		},
		cli.StringFlag{
			Name:  "out",
			Usage: "output path for the gzipped snapshot",
			Value: "publicsuffix/data/public_suffix_list.dat.gz",
		},
		cli.IntFlag{
			Name:  "retries",
			Usage: "number of retries for the fetch",
			Value: 3,
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log each rule as it's classified",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	if !c.Bool("verbose") {
		logger = logger.Level(zerolog.InfoLevel)
	}

	source := c.String("source")
	logger.Info().Str("source", source).Msg("fetching public suffix list")

	body, err := fetch(source, c.Int("retries"))
	if err != nil {
		return fmt.Errorf("fetch %s: %w", source, err)
	}

	rules, exceptions, err := classify(body, logger)
	if err != nil {
		return fmt.Errorf("classify rules: %w", err)
	}
	logger.Info().Int("rules", len(rules)).Int("exceptions", len(exceptions)).Msg("classified")

	out := c.String("out")
	if err := writeSnapshot(out, rules, exceptions); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Info().Str("out", out).Msg("wrote snapshot")
	return nil
}

func fetch(source string, retries int) ([]byte, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = retries
	client.Logger = nil
	client.HTTPClient = &http.Client{Timeout: 30 * time.Second}

	resp, err := client.Get(source)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// classify mirrors the upstream generator's line classification: blank
// lines and "//" comments are skipped, a leading "!" marks an exception
// rule, and a "*" must appear only in leftmost position and only once —
// violations fail loudly rather than silently producing a database the
// runtime lookup can't interpret.
func classify(body []byte, logger zerolog.Logger) (rules, exceptions []string, err error) {
	ruleSet := make(map[string]bool)
	exceptionSet := make(map[string]bool)

	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.Contains(line, "*") {
			if err := checkWildcardShape(line); err != nil {
				return nil, nil, err
			}
		}

		if strings.HasPrefix(line, "!") {
			exceptionSet[line[1:]] = true
		} else {
			ruleSet[line] = true
		}
		if logger.GetLevel() <= zerolog.DebugLevel {
			logger.Debug().Str("line", line).Msg("classified")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return sortedKeys(ruleSet), sortedKeys(exceptionSet), nil
}

func checkWildcardShape(rule string) error {
	if strings.IndexByte(rule, '*') != 0 {
		return fmt.Errorf("wildcard not in leftmost position: %q", rule)
	}
	if strings.IndexByte(rule[1:], '*') != -1 {
		return fmt.Errorf("multiple wildcards: %q", rule)
	}
	if len(rule) == 1 {
		return fmt.Errorf("wildcard at the first level: %q", rule)
	}
	return nil
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func writeSnapshot(path string, rules, exceptions []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	defer zw.Close()

	if err := writeSection(zw, rules); err != nil {
		return err
	}
	return writeSection(zw, exceptions)
}

func writeSection(w io.Writer, entries []string) error {
	var body bytes.Buffer
	for _, e := range entries {
		body.WriteString(e)
		body.WriteByte('\n')
	}
	var lengthBuf [4]byte
	binary.BigEndian.PutUint32(lengthBuf[:], uint32(body.Len()))
	if _, err := w.Write(lengthBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}
