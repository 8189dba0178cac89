package http

import (
	"github.com/aussiebroadwan/deptshare/internal/share/domain"
	"github.com/aussiebroadwan/deptshare/pkg/sharesdk"
)

func toAccount(a domain.AccountView) sharesdk.Account {
	return sharesdk.Account{
		ID:         a.ID,
		FullName:   a.FullName,
		Email:      a.Email,
		Department: a.Department.String(),
		Identifier: a.Identifier,
		CreatedAt:  a.CreatedAt,
	}
}

func toFile(r domain.Resource) sharesdk.File {
	return sharesdk.File{
		ID:           r.ID,
		OriginalName: r.OriginalName,
		StoredName:   r.StoredName,
		Path:         r.Locator,
		ContentType:  r.ContentType,
		Size:         r.Size,
		Checksum:     r.Checksum,
		Department:   r.Department.String(),
		Owner: sharesdk.FileOwner{
			FullName:   r.Owner.FullName,
			Identifier: r.Owner.Identifier,
		},
		CreatedAt: r.CreatedAt,
	}
}

func toFiles(rs []domain.Resource) []sharesdk.File {
	out := make([]sharesdk.File, len(rs))
	for i, r := range rs {
		out[i] = toFile(r)
	}
	return out
}
