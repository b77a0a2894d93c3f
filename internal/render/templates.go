package render

// cardTemplate renders one article in list context.
const cardTemplate = `<article class="card" data-id="{{.ID}}" data-topic="{{.Topic}}">
  <a class="card-link" href="{{.Href}}">
    {{- if .Cover}}
    <img class="card-cover" src="{{.Cover}}" alt="{{.Title}}" loading="lazy">
    {{- end}}
    <div class="card-body">
      {{- if .Topic}}
      <span class="chip chip-topic">{{.Topic}}</span>
      {{- end}}
      <h3 class="card-title">{{.Title}}</h3>
      <p class="card-excerpt">{{.Excerpt}}</p>
      <div class="card-meta">
        <span class="card-author">{{.Author}}</span>
        <time datetime="{{.Date}}">{{.DateLabel}}</time>
      </div>
    </div>
  </a>
</article>`

// detailTemplate renders one article in detail context. Content is the only
// field inserted as markup and has already been sanitized.
const detailTemplate = `<article class="detail" data-id="{{.ID}}">
  <header class="detail-header">
    {{- if .Topic}}
    <span class="chip chip-topic">{{.Topic}}</span>
    {{- end}}
    <h1 class="detail-title">{{.Title}}</h1>
    <div class="detail-meta">
      <span class="detail-author">{{.Author}}</span>
      <time datetime="{{.Date}}">{{.DateLabel}}</time>
      <span class="detail-reading">{{.ReadingMinutes}} menit baca</span>
    </div>
  </header>
  {{- if .Cover}}
  <img class="detail-cover" src="{{.Cover}}" alt="{{.Title}}">
  {{- end}}
  <div class="detail-content">{{.Content}}</div>
</article>`
