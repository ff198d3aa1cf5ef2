// Package envfile parses dotenv-style files and maps environment names to
// file paths. Files hold one KEY=VALUE pair per line; lines that do not start
// with a letter are ignored. The default environment lives in ".env" and a
// named environment NAME lives in ".name.env", both in a single directory.
package envfile
