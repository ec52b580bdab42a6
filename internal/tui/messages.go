package tui

import (
	"time"

	"stackread/internal/render"
	"stackread/internal/substack"
)

type postsLoadedMsg struct {
	posts []substack.Post
}

type postLoadedMsg struct {
	slug    string
	doc     string
	summary []render.Field
}

type errMsg struct {
	err error
}

type newPostMsg struct {
	published time.Time
}
