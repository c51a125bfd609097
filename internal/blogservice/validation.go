package blogservice

import (
	"regexp"

	"github.com/blogverse/blogverse/internal/common"
)

var PostnameRX = regexp.MustCompile(`^[a-zA-Z0-9\-]+$`)

func validatePostname(v *common.Validator, postname string) {
	v.Check(postname != "", "postname", "must be provided")
	v.Check(v.CheckStringLength(postname, 3, 100), "postname", "must be between 3 and 100 characters long")
	v.Check(PostnameRX.MatchString(postname), "postname", "must only contain letters, numbers, and hyphens")
}

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 3, 100), "title", "must be between 3 and 100 characters long")
}

func validateDescription(v *common.Validator, description string) {
	v.Check(description != "", "description", "must be provided")
}

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
}
