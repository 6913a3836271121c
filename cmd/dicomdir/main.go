// Copyright 2026 The go-dicomdir Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command dicomdir builds, inspects and serves DICOM Media Storage Directory files.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/dcmkit/go-dicomdir/dicom"
	"github.com/dcmkit/go-dicomdir/dicomdir"
	"github.com/dcmkit/go-dicomdir/internal/client"
	"github.com/dcmkit/go-dicomdir/internal/config"
	"github.com/dcmkit/go-dicomdir/internal/diag"
	"github.com/dcmkit/go-dicomdir/internal/server"
)

const usage = `usage: dicomdir <command> [flags]

commands:
  build  -manifest <path>          build a directory file from a YAML manifest
  ls     [-file <path>] [-remote]  print the record tree
  rm     -file <path> <sop-uid>    remove an instance record and rewrite the file
  dump   -file <path>              deep-dump the in-memory record tree
  serve  -file <path> [-addr]      serve the browse API over a directory file
  shell  -file <path>              interactive session over a directory file
`

// srSOPClassPrefix covers the structured report storage SOP classes of PS3.4 B.5
const srSOPClassPrefix = "1.2.840.10008.5.1.4.1.1.88."

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dicomdir: creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := config.FromEnv()
	args := os.Args[2:]

	switch os.Args[1] {
	case "build":
		err = runBuild(log, args)
	case "ls":
		err = runList(cfg, log, args)
	case "rm":
		err = runRemove(log, args)
	case "dump":
		err = runDump(log, args)
	case "serve":
		err = runServe(cfg, log, args)
	case "shell":
		err = runShell(log, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "dicomdir: %v\n", err)
		os.Exit(1)
	}
}

func runBuild(log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	manifestPath := fs.String("manifest", "dicomdir.yaml", "path of the build manifest")
	fs.Parse(args)

	manifest, err := config.LoadManifest(*manifestPath)
	if err != nil {
		return err
	}
	baseDir := filepath.Dir(*manifestPath)

	d := dicomdir.New(
		dicomdir.WithDiagnostics(diag.New(log)),
		dicomdir.WithTransferSyntax(transferSyntaxOr(manifest.TransferSyntaxUID)),
	)
	if err := d.SetFileSetID(manifest.FileSetID); err != nil {
		return err
	}

	registered := 0
	for _, pattern := range manifest.Sources {
		matches, err := filepath.Glob(filepath.Join(baseDir, pattern))
		if err != nil {
			return fmt.Errorf("expanding pattern %q: %w", pattern, err)
		}
		for _, path := range matches {
			if err := registerPath(d, baseDir, path, log); err != nil {
				return err
			}
			registered++
		}
	}
	if registered == 0 {
		return fmt.Errorf("no files matched the manifest's source patterns")
	}

	output := manifest.Output
	if !filepath.IsAbs(output) {
		output = filepath.Join(baseDir, output)
	}
	if err := d.SaveFile(output); err != nil {
		return err
	}

	log.Info("directory written",
		zap.String("path", output), zap.Int("files", registered))
	return nil
}

func registerPath(d *dicomdir.Directory, baseDir, path string, log *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ds, err := dicom.Parse(f)
	if err != nil {
		// unreadable candidates are skipped, media commonly carries non-DICOM files
		log.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
		return nil
	}

	fileID, err := filepath.Rel(baseDir, path)
	if err != nil {
		fileID = filepath.Base(path)
	}
	return d.RegisterFile(ds, recordTypeOf(ds), filepath.ToSlash(fileID))
}

// recordTypeOf maps a file's SOP class to the directory record type of its leaf
func recordTypeOf(ds *dicom.DataSet) string {
	classUID, ok := ds.StringValue(dicom.MediaStorageSOPClassUIDTag)
	if !ok {
		classUID, _ = ds.StringValue(dicom.SOPClassUIDTag)
	}
	if strings.HasPrefix(classUID, srSOPClassPrefix) {
		return dicomdir.RecordTypeSRDocument
	}
	return dicomdir.RecordTypeImage
}

func transferSyntaxOr(uid string) string {
	if uid == "" {
		return dicom.ExplicitVRLittleEndianUID
	}
	return uid
}

func runList(cfg *config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	path := fs.String("file", "DICOMDIR", "path of the directory file")
	remote := fs.Bool("remote", false, "list a remote directory via the browse API")
	fs.Parse(args)

	if *remote {
		return listRemote(cfg.RemoteAddr)
	}

	d, err := openDirectory(*path, log)
	if err != nil {
		return err
	}
	printTree(d)
	return nil
}

func printTree(d *dicomdir.Directory) {
	fmt.Printf("FILE SET %s\n", d.FileSetID())
	if d.IsPartial() {
		fmt.Println("  (partial read)")
	}

	type frame struct {
		rec   *dicomdir.Record
		depth int
	}
	stack := []frame{{d.Root(), 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.rec == nil {
			continue
		}
		fmt.Printf("%s%s %s\n", strings.Repeat("  ", f.depth+1), f.rec.Type, recordLabel(f.rec))
		stack = append(stack, frame{f.rec.Next, f.depth}, frame{f.rec.Child, f.depth + 1})
	}
}

func recordLabel(rec *dicomdir.Record) string {
	switch rec.Type {
	case dicomdir.RecordTypePatient:
		return rec.StringValue(dicom.PatientIDTag) + " " + rec.StringValue(dicom.PatientNameTag)
	case dicomdir.RecordTypeStudy:
		return rec.StringValue(dicom.StudyInstanceUIDTag)
	case dicomdir.RecordTypeSeries:
		return rec.StringValue(dicom.SeriesInstanceUIDTag)
	default:
		return rec.StringValue(dicom.ReferencedSOPInstanceUIDInFileTag)
	}
}

func listRemote(addr string) error {
	ctx := context.Background()
	c := client.New(addr)

	fileSet, err := c.FileSet(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("FILE SET %s\n", fileSet.FileSetID)

	patients, err := c.Patients(ctx)
	if err != nil {
		return err
	}
	for _, p := range patients {
		fmt.Printf("  PATIENT %s %s\n", p.PatientID, p.PatientName)
		studies, err := c.Studies(ctx, p.PatientID)
		if err != nil {
			return err
		}
		for _, st := range studies {
			fmt.Printf("    STUDY %s\n", st.StudyInstanceUID)
			series, err := c.Series(ctx, st.StudyInstanceUID)
			if err != nil {
				return err
			}
			for _, se := range series {
				fmt.Printf("      SERIES %s\n", se.SeriesInstanceUID)
				instances, err := c.Instances(ctx, se.SeriesInstanceUID)
				if err != nil {
					return err
				}
				for _, in := range instances {
					fmt.Printf("        %s %s %s\n", in.RecordType, in.SOPInstanceUID, in.ReferencedFileID)
				}
			}
		}
	}
	return nil
}

func runRemove(log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	path := fs.String("file", "DICOMDIR", "path of the directory file")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("rm expects exactly one SOP instance UID")
	}
	uid := fs.Arg(0)

	d, err := openDirectory(*path, log)
	if err != nil {
		return err
	}
	if !removeInstance(d, uid) {
		return fmt.Errorf("no instance record references SOP instance UID %s", uid)
	}
	return d.SaveFile(*path)
}

// removeInstance unlinks the first leaf record referencing uid anywhere in the tree
func removeInstance(d *dicomdir.Directory, uid string) bool {
	for patient := d.Root(); patient != nil; patient = patient.Next {
		for study := patient.Child; study != nil; study = study.Next {
			for series := study.Child; series != nil; series = series.Next {
				match, previous := d.Find(
					dicom.ReferencedSOPInstanceUIDInFileTag, dicomdir.At(series), uid)
				if match != nil {
					d.Remove(match, previous, dicomdir.At(series))
					return true
				}
			}
		}
	}
	return false
}

func runDump(log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	path := fs.String("file", "DICOMDIR", "path of the directory file")
	fs.Parse(args)

	d, err := openDirectory(*path, log)
	if err != nil {
		return err
	}
	spew.Fdump(os.Stdout, d.Root())
	return nil
}

func runServe(cfg *config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	path := fs.String("file", "DICOMDIR", "path of the directory file")
	addr := fs.String("addr", cfg.ListenAddr, "listen address of the browse API")
	fs.Parse(args)

	d, err := openDirectory(*path, log)
	if err != nil {
		return err
	}
	return server.New(d, log).ListenAndServe(*addr)
}

func runShell(log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	path := fs.String("file", "DICOMDIR", "path of the directory file")
	fs.Parse(args)

	d, err := openDirectory(*path, log)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("dicomdir> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		words, err := shellquote.Split(scanner.Text())
		if err != nil {
			fmt.Printf("parse error: %v\n", err)
			continue
		}
		if len(words) == 0 {
			continue
		}

		switch words[0] {
		case "ls":
			printTree(d)
		case "rm":
			if len(words) != 2 {
				fmt.Println("usage: rm <sop-uid>")
				continue
			}
			if removeInstance(d, words[1]) {
				fmt.Println("removed")
			} else {
				fmt.Println("not found")
			}
		case "save":
			target := *path
			if len(words) == 2 {
				target = words[1]
			}
			if err := d.SaveFile(target); err != nil {
				fmt.Printf("save failed: %v\n", err)
				continue
			}
			fmt.Printf("saved %s\n", target)
		case "quit", "exit":
			return nil
		default:
			fmt.Println("commands: ls, rm <sop-uid>, save [path], quit")
		}
	}
}

func openDirectory(path string, log *zap.Logger) (*dicomdir.Directory, error) {
	d, err := dicomdir.Open(path, dicomdir.WithOpenDiagnostics(diag.New(log)))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%s is not a readable directory file", path)
	}
	return d, nil
}
