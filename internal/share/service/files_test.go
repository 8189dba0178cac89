package service

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/pkg/idx"
	"github.com/stretchr/testify/require"
)

type fileFixture struct {
	svc *FileService
	fin domain.Principal
	eng domain.Principal
}

func newFileFixture(t *testing.T) fileFixture {
	t.Helper()

	st := newTestStore(t)
	return fileFixture{
		svc: &FileService{Store: st, Blobs: newTestBlobs(t)},
		fin: register(t, st, "Frank Finance", "frank@example.com", domain.DepartmentFinance),
		eng: register(t, st, "Erin Engineer", "erin@example.com", domain.DepartmentEngineering),
	}
}

func upload(name, body string) UploadInput {
	return UploadInput{Filename: name, Size: int64(len(body)), Body: strings.NewReader(body)}
}

func blobCount(t *testing.T, svc *FileService) int {
	t.Helper()
	entries, err := os.ReadDir(svc.Blobs.Dir())
	require.NoError(t, err)
	return len(entries)
}

func TestFilesAreScopedToDepartment(t *testing.T) {
	ctx := context.Background()
	f := newFileFixture(t)

	res, err := f.svc.Upload(ctx, f.fin, upload("Budget 2025.XLSX", "numbers"))
	require.NoError(t, err)
	require.Equal(t, domain.DepartmentFinance, res.Department)
	require.Equal(t, "Budget 2025.XLSX", res.OriginalName)
	require.NotEqual(t, res.OriginalName, res.StoredName)
	require.Equal(t, LocatorPrefix+res.StoredName, res.Locator)
	require.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", res.ContentType)
	require.Equal(t, int64(7), res.Size)
	require.Equal(t, f.fin.AccountID, res.OwnerID)
	require.Equal(t, "Frank Finance", res.Owner.FullName)

	finList, err := f.svc.List(ctx, f.fin)
	require.NoError(t, err)
	require.Len(t, finList, 1)
	require.Equal(t, res.ID, finList[0].ID)
	require.Equal(t, f.fin.Identifier, finList[0].Owner.Identifier)

	engList, err := f.svc.List(ctx, f.eng)
	require.NoError(t, err)
	require.Empty(t, engList)

	_, err = f.svc.Get(ctx, f.eng, res.ID)
	require.ErrorIs(t, err, ErrForbidden)
	_, _, err = f.svc.Open(ctx, f.eng, res.ID)
	require.ErrorIs(t, err, ErrForbidden)

	got, body, err := f.svc.Open(ctx, f.fin, res.ID)
	require.NoError(t, err)
	defer body.Close()
	require.Equal(t, res.ID, got.ID)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "numbers", string(data))
}

func TestListIsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFileFixture(t)

	var ids []string
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		res, err := f.svc.Upload(ctx, f.eng, upload(name, "x"))
		require.NoError(t, err)
		ids = append(ids, res.ID)
	}

	list, err := f.svc.List(ctx, f.eng)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestUploadRejections(t *testing.T) {
	ctx := context.Background()
	f := newFileFixture(t)
	f.svc.MaxFileSize = 10

	cases := map[string]struct {
		in   UploadInput
		want error
	}{
		"missing body":       {UploadInput{Filename: "a.txt", Size: 1}, ErrNoFile},
		"empty file":         {upload("a.txt", ""), ErrNoFile},
		"missing name":       {upload("", "abc"), ErrNoFile},
		"executable":         {upload("run.exe", "abc"), ErrUnsupportedFileType},
		"no extension":       {upload("README", "abc"), ErrUnsupportedFileType},
		"declared too large": {upload("big.txt", "12345678901"), ErrFileTooLarge},
		"lies about size":    {UploadInput{Filename: "big.txt", Size: 3, Body: strings.NewReader(strings.Repeat("x", 50))}, ErrFileTooLarge},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Upload(ctx, f.fin, tc.in)
			require.ErrorIs(t, err, tc.want)
		})
	}

	require.Zero(t, blobCount(t, f.svc), "rejected uploads leave nothing on disk")

	_, err := f.svc.Upload(ctx, f.fin, upload("exact.txt", "1234567890"))
	require.NoError(t, err)
}

func TestUploadRemovesBodyWhenRecordFails(t *testing.T) {
	ctx := context.Background()
	f := newFileFixture(t)

	ghost := domain.Principal{
		AccountID:  idx.New().String(),
		Identifier: "FIN-222222",
		Department: domain.DepartmentFinance,
	}
	_, err := f.svc.Upload(ctx, ghost, upload("a.pdf", "data"))
	require.Error(t, err)
	require.Zero(t, blobCount(t, f.svc))
}

func TestFileAccessRequiresSession(t *testing.T) {
	ctx := context.Background()
	f := newFileFixture(t)
	anon := domain.Principal{}

	_, err := f.svc.List(ctx, anon)
	require.ErrorIs(t, err, ErrUnauthenticated)
	_, err = f.svc.Upload(ctx, anon, upload("a.txt", "x"))
	require.ErrorIs(t, err, ErrUnauthenticated)
	_, err = f.svc.Get(ctx, anon, idx.New().String())
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGetUnknownFile(t *testing.T) {
	ctx := context.Background()
	f := newFileFixture(t)

	_, err := f.svc.Get(ctx, f.fin, idx.New().String())
	require.ErrorIs(t, err, ErrFileNotFound)
	_, err = f.svc.Get(ctx, f.fin, "../../etc/passwd")
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestContentTypeFor(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]string{
		"a.png": "image/png", "a.JPG": "image/jpeg", "a.jpeg": "image/jpeg", "a.gif": "image/gif",
		"a.pdf": "application/pdf", "a.doc": "application/msword", "a.xls": "application/vnd.ms-excel",
		"a.txt": "text/plain", "a.csv": "text/csv",
	} {
		got, ok := ContentTypeFor(name)
		require.True(t, ok, name)
		require.Equal(t, want, got, name)
	}

	for _, name := range []string{"a.exe", "a.html", "a.svg", "a", "a.pdf.sh"} {
		_, ok := ContentTypeFor(name)
		require.False(t, ok, name)
	}
}
