package models

import "strings"

// ProfileFields is the sparse input of a profile upsert. A field counts as supplied
// only when it is non-nil and non-empty; everything else is left untouched on merge.
type ProfileFields struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Status         *string `json:"status"`
	Skills         *string `json:"skills"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`

	Youtube   *string `json:"youtube"`
	Twitter   *string `json:"twitter"`
	Facebook  *string `json:"facebook"`
	Linkedin  *string `json:"linkedin"`
	Instagram *string `json:"instagram"`
}

// Present reports whether an optional string was supplied.
func Present(s *string) bool { return s != nil && *s != "" }

// SplitSkills turns "js, node ,react" into ["js" "node" "react"].
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// SkillList returns the parsed skills, or nil when skills were not supplied.
func (f ProfileFields) SkillList() []string {
	if !Present(f.Skills) {
		return nil
	}
	return SplitSkills(*f.Skills)
}

// Scalars returns the supplied top-level string fields keyed by their JSON name.
func (f ProfileFields) Scalars() map[string]string {
	out := map[string]string{}
	add := func(k string, v *string) {
		if Present(v) {
			out[k] = *v
		}
	}
	add("company", f.Company)
	add("website", f.Website)
	add("location", f.Location)
	add("status", f.Status)
	add("bio", f.Bio)
	add("githubusername", f.GithubUsername)
	return out
}

// SocialLinks returns the supplied social links keyed by network.
func (f ProfileFields) SocialLinks() map[string]string {
	out := map[string]string{}
	add := func(k string, v *string) {
		if Present(v) {
			out[k] = *v
		}
	}
	add("youtube", f.Youtube)
	add("twitter", f.Twitter)
	add("facebook", f.Facebook)
	add("linkedin", f.Linkedin)
	add("instagram", f.Instagram)
	return out
}

func (f ProfileFields) HasChanges() bool {
	return len(f.Scalars()) > 0 || len(f.SocialLinks()) > 0 || Present(f.Skills)
}

// Apply overwrites the supplied fields on p and leaves the rest as they are.
func (f ProfileFields) Apply(p *Profile) {
	set := func(dst *string, v *string) {
		if Present(v) {
			*dst = *v
		}
	}
	set(&p.Company, f.Company)
	set(&p.Website, f.Website)
	set(&p.Location, f.Location)
	set(&p.Status, f.Status)
	set(&p.Bio, f.Bio)
	set(&p.GithubUsername, f.GithubUsername)
	if skills := f.SkillList(); skills != nil {
		p.Skills = skills
	}

	set(&p.Social.Youtube, f.Youtube)
	set(&p.Social.Twitter, f.Twitter)
	set(&p.Social.Facebook, f.Facebook)
	set(&p.Social.Linkedin, f.Linkedin)
	set(&p.Social.Instagram, f.Instagram)
}
