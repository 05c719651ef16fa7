package view

import (
	"github.com/ivanpodgorny/sprayweb/internal/entity"
	"net/http"
	"strings"
)

// Page - данные, общие для всех страниц: текущий пользователь, навигация
// и уведомление. Content содержит данные конкретной страницы.
type Page struct {
	Title       string
	Session     *entity.Session
	Breadcrumbs []Crumb
	Sidebar     []Link
	Notice      *Notice
	Content     any
}

type Notice struct {
	Positive bool
	Text     string
}

type Crumb struct {
	Label string
	Href  string
	Last  bool
}

type Link struct {
	Label  string
	Href   string
	Active bool
}

var sidebarLinks = map[entity.Role][]Link{
	entity.RoleFarmer: {
		{Label: "Booking", Href: "/booking"},
		{Label: "Orders", Href: "/farmer/orders"},
	},
	entity.RoleSprayer: {
		{Label: "Assigned orders", Href: "/sprayer/assign-orders"},
	},
	entity.RoleReceptionist: {
		{Label: "Dashboard", Href: "/receptionist/dashboard"},
	},
}

func NewPage(r *http.Request, title string, content any) Page {
	p := Page{
		Title:       title,
		Breadcrumbs: Breadcrumbs(r.URL.Path),
		Content:     content,
	}
	if s, ok := entity.CurrentSession(r.Context()); ok {
		p.Session = s
		p.Sidebar = Sidebar(s.User.Role, r.URL.Path)
	}

	return p
}

func (p Page) WithNotice(positive bool, text string) Page {
	p.Notice = &Notice{Positive: positive, Text: text}

	return p
}

// Sidebar возвращает ссылки боковой панели для роли role. Ссылка, ведущая
// на раздел path, отмечается как активная.
func Sidebar(role entity.Role, path string) []Link {
	links := make([]Link, 0, len(sidebarLinks[role]))
	for _, l := range sidebarLinks[role] {
		l.Active = path == l.Href || strings.HasPrefix(path, l.Href+"/")
		links = append(links, l)
	}

	return links
}

// Breadcrumbs строит цепочку навигации по пути запроса: по одному элементу
// на каждый сегмент пути. Дефисы в сегментах заменяются пробелами, первая
// буква делается заглавной.
func Breadcrumbs(path string) []Crumb {
	var (
		crumbs []Crumb
		href   strings.Builder
	)
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}

		href.WriteString("/" + segment)
		crumbs = append(crumbs, Crumb{
			Label: crumbLabel(segment),
			Href:  href.String(),
		})
	}
	if len(crumbs) > 0 {
		crumbs[len(crumbs)-1].Last = true
	}

	return crumbs
}

func crumbLabel(segment string) string {
	label := strings.ReplaceAll(segment, "-", " ")

	return strings.ToUpper(label[:1]) + label[1:]
}
