// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package git reads file changes from the history of a git repository by running the git
// command line tool.
package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// nullID is the blob ID git reports for a file that doesn't exist on one side of a change.
const nullID = "0000000000000000000000000000000000000000"

// gitlinkMode is the file mode of a submodule entry. Its ID names a commit in another repository.
const gitlinkMode = "160000"

// Repo is an open repository. It's safe for concurrent use.
type Repo struct {
	dir string

	mu  sync.Mutex // guards the cat-file process
	cmd *exec.Cmd
	in  io.WriteCloser
	out *bufio.Reader
}

// Open starts a reader for the repository in dir. The reader is stopped by Close or when ctx is
// canceled.
func Open(ctx context.Context, dir string) (*Repo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "cat-file", "--batch")
	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdin: %w", err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting git cat-file: %w", err)
	}
	return &Repo{
		dir: dir,
		cmd: cmd,
		in:  in,
		out: bufio.NewReader(out),
	}, nil
}

// Close stops the reader.
func (r *Repo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.in.Close()
	return r.cmd.Wait()
}

// RevList returns the IDs of all non-merge commits reachable from HEAD, newest first.
func (r *Repo) RevList(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "rev-list", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// Change is a file modified by a commit.
type Change struct {
	Commit string
	Name   string
	OldID  string
	NewID  string
}

// Changes returns the files changed by commit compared to its first parent. Submodule entries are
// skipped.
func (r *Repo) Changes(ctx context.Context, commit string) ([]Change, error) {
	out, err := r.git(ctx, "diff-tree", "-r", "--no-commit-id", commit)
	if err != nil {
		return nil, err
	}
	var changes []Change
	for line := range strings.Lines(out) {
		line = strings.TrimSuffix(line, "\n")
		if line == "" {
			continue
		}
		// :<old mode> <new mode> <old id> <new id> <status>\t<name>
		meta, name, ok := strings.Cut(line, "\t")
		if !ok || !strings.HasPrefix(meta, ":") {
			return nil, fmt.Errorf("unexpected diff-tree output: %q", line)
		}
		fields := strings.Fields(meta[1:])
		if len(fields) != 5 {
			return nil, fmt.Errorf("unexpected diff-tree output: %q", line)
		}
		if fields[0] == gitlinkMode || fields[1] == gitlinkMode {
			continue
		}
		changes = append(changes, Change{
			Commit: commit,
			Name:   name,
			OldID:  fields[2],
			NewID:  fields[3],
		})
	}
	return changes, nil
}

// ReadBlob returns the contents of the blob with the given ID. The null ID reads as empty.
func (r *Repo) ReadBlob(id string) ([]byte, error) {
	if id == nullID {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := fmt.Fprintln(r.in, id); err != nil {
		return nil, fmt.Errorf("requesting blob %s: %w", id, err)
	}
	// <id> <type> <size>\n<contents>\n
	header, err := r.out.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading blob header %s: %w", id, err)
	}
	fields := strings.Fields(header)
	if len(fields) == 2 && fields[1] == "missing" {
		return nil, fmt.Errorf("reading blob %s: object not found", id)
	}
	if len(fields) != 3 {
		return nil, fmt.Errorf("reading blob %s: unexpected header %q", id, header)
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", id, err)
	}
	// The body is always consumed to keep the stream in sync for the next request.
	buf := make([]byte, n+1)
	if _, err := io.ReadFull(r.out, buf); err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", id, err)
	}
	if fields[0] != id || fields[1] != "blob" {
		return nil, fmt.Errorf("reading blob %s: got %s %s", id, fields[1], fields[0])
	}
	return buf[:n], nil
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return "", fmt.Errorf("git %s: %w\n%s", args[0], err, stderr.String())
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}
