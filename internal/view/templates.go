package view

// partialTemplates are the fragments shared by full pages and live-search pushes.
const partialTemplates = `
{{define "status"}}<div class="status status-{{.Status}}" role="status">
  <p class="status-message">{{.Message}}</p>
  {{if .Detail}}<p class="status-detail">{{.Detail}}</p>{{end}}
  {{if .RetryHref}}<a class="btn btn-retry" href="{{.RetryHref}}">Coba lagi</a>{{end}}
</div>{{end}}

{{define "chips"}}<nav class="chips" id="chips" aria-label="Topik">
  {{range .Chips}}<a class="chip{{if .Active}} chip-active{{end}}" href="{{.Href}}" data-topic="{{.Value}}" aria-pressed="{{.Active}}">{{.Label}}</a>
  {{end}}
</nav>{{end}}

{{define "results"}}<section class="results" id="results" data-status="{{.Status}}">
  {{if .Ready}}<p class="count" id="count">{{.Count}} artikel</p>
  <div class="grid">
    {{range .Cards}}{{.}}
    {{end}}
  </div>{{else}}{{template "status" .}}{{end}}
</section>{{end}}
`

// pageTemplates are the full list and detail documents.
const pageTemplates = `
{{define "head"}}<!DOCTYPE html>
<html lang="id">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="{{.Site.BasePath}}style.css">
</head>
<body data-view="{{.Kind}}"{{if .Site.SocketPath}} data-socket="{{.Site.SocketPath}}"{{end}}>
  <header class="site-header">
    <a class="brand" href="{{.Site.Home}}">{{.Site.Title}}</a>
  </header>
  <main class="container">{{end}}

{{define "foot"}}  </main>
  {{if .Site.SocketPath}}<footer class="site-footer"><a href="?clearcache">Muat ulang data</a></footer>
  <script src="{{.Site.BasePath}}app.js"></script>{{end}}
</body>
</html>{{end}}

{{define "list"}}{{template "head" .}}
    <form class="search" id="search-form" method="get" action="{{.Site.Home}}">
      {{with .List}}<input type="hidden" name="topic" id="search-topic" value="{{.State.ActiveTopic}}">
      <input type="search" id="search-input" name="q" value="{{.State.Query}}" placeholder="Cari artikel..." autocomplete="off">{{end}}
      <button type="submit" class="btn" id="search-button">Cari</button>
    </form>
    {{template "chips" .List}}
    {{template "results" .List}}
{{template "foot" .}}{{end}}

{{define "detail"}}{{template "head" .}}
    <a class="back" href="{{.Site.Home}}">&larr; Kembali ke daftar</a>
    {{with .Detail}}{{if .Ready}}{{if .Fallback}}<p class="notice" id="fallback-notice">{{.Message}}</p>{{end}}
    {{.HTML}}{{else}}{{template "status" .}}{{end}}{{end}}
{{template "foot" .}}{{end}}
`

// Stylesheet is served and exported as style.css.
const Stylesheet = `:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-light: #e7f5ff;
  --danger: #e03131;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
}

@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1b26;
    --bg-secondary: #1f2030;
    --text: #c0caf5;
    --text-muted: #565f89;
    --border: #292e42;
    --accent: #7aa2f7;
    --accent-light: #1a1b2e;
    --danger: #f7768e;
    --shadow: 0 1px 3px rgba(0,0,0,0.3);
  }
}

* { box-sizing: border-box; }
body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--text); line-height: 1.6; }
a { color: var(--accent); text-decoration: none; }
.site-header { border-bottom: 1px solid var(--border); padding: 1rem 1.5rem; }
.brand { font-weight: 700; font-size: 1.25rem; color: var(--text); }
.container { max-width: 1080px; margin: 0 auto; padding: 1.5rem; }
.site-footer { text-align: center; padding: 2rem 0; font-size: 0.85rem; color: var(--text-muted); }

.search { display: flex; gap: 0.5rem; margin-bottom: 1rem; }
.search input[type=search] { flex: 1; padding: 0.6rem 0.8rem; border: 1px solid var(--border); border-radius: 6px; background: var(--bg-secondary); color: var(--text); font-size: 1rem; }
.btn { display: inline-block; padding: 0.6rem 1rem; border: 0; border-radius: 6px; background: var(--accent); color: #fff; cursor: pointer; font-size: 0.95rem; }

.chips { display: flex; flex-wrap: wrap; gap: 0.5rem; margin-bottom: 1.25rem; }
.chip { padding: 0.3rem 0.8rem; border: 1px solid var(--border); border-radius: 999px; font-size: 0.85rem; color: var(--text); }
.chip-active { background: var(--accent); border-color: var(--accent); color: #fff; }

.count { color: var(--text-muted); font-size: 0.9rem; margin: 0 0 0.75rem; }
.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(280px, 1fr)); gap: 1.25rem; }
.card { border: 1px solid var(--border); border-radius: 10px; overflow: hidden; background: var(--bg-secondary); box-shadow: var(--shadow); }
.card-link { display: block; color: inherit; }
.card-cover { width: 100%; height: 160px; object-fit: cover; display: block; }
.card-body { padding: 1rem; }
.card-title { margin: 0.5rem 0; font-size: 1.1rem; }
.card-excerpt { color: var(--text-muted); margin: 0 0 0.75rem; }
.card-meta, .detail-meta { font-size: 0.85rem; color: var(--text-muted); display: flex; gap: 0.75rem; flex-wrap: wrap; }
.chip.chip-topic { display: inline-block; border: 0; background: var(--accent-light); color: var(--accent); padding: 0.1rem 0.6rem; font-size: 0.75rem; }

.back { display: inline-block; margin-bottom: 1rem; }
.notice { background: var(--accent-light); border-left: 3px solid var(--accent); padding: 0.75rem 1rem; border-radius: 4px; }
.detail { max-width: 760px; margin: 0 auto; }
.detail-title { font-size: 2rem; line-height: 1.25; margin: 0.5rem 0; }
.detail-cover { width: 100%; border-radius: 10px; margin: 1rem 0; }
.detail-content img { max-width: 100%; }

.status { text-align: center; padding: 3rem 1rem; color: var(--text-muted); }
.status-error .status-message { color: var(--danger); font-weight: 600; }
.status-detail { font-size: 0.85rem; }
.status-loading .status-message::after { content: ""; display: inline-block; width: 0.8em; height: 0.8em; margin-left: 0.5em; border: 2px solid var(--border); border-top-color: var(--accent); border-radius: 50%; animation: spin 0.8s linear infinite; }
@keyframes spin { to { transform: rotate(360deg); } }
`

// Script drives live search over the websocket and is served as app.js.
const Script = `(function() {
  var body = document.body;
  var path = body.getAttribute('data-socket');
  if (!path || body.getAttribute('data-view') !== 'list' || !window.WebSocket) return;

  var form = document.getElementById('search-form');
  var input = document.getElementById('search-input');
  var topicField = document.getElementById('search-topic');
  var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
  var ws = new WebSocket(proto + '//' + location.host + path + location.search);
  var open = false;

  function send(type, value) {
    if (!open) return false;
    ws.send(JSON.stringify({ type: type, value: value }));
    return true;
  }

  function replace(id, html) {
    var el = document.getElementById(id);
    if (!el || !html) return;
    var wrap = document.createElement('div');
    wrap.innerHTML = html;
    if (wrap.firstElementChild) el.replaceWith(wrap.firstElementChild);
  }

  function syncURL(topic, query) {
    var params = new URLSearchParams();
    if (topic && topic !== 'all') params.set('topic', topic);
    if (query) params.set('q', query);
    var qs = params.toString();
    history.replaceState(null, '', qs ? '?' + qs : location.pathname);
  }

  ws.onopen = function() { open = true; };
  ws.onclose = function() { open = false; };

  ws.onmessage = function(event) {
    var msg;
    try { msg = JSON.parse(event.data); } catch (e) { return; }
    if (msg.chips) replace('chips', msg.chips);
    if (msg.html) replace('results', msg.html);
    if (msg.type === 'results') {
      if (topicField) topicField.value = msg.topic || 'all';
      syncURL(msg.topic, msg.query);
    }
  };

  if (input) {
    input.addEventListener('input', function() { send('input', input.value); });
  }
  if (form) {
    form.addEventListener('submit', function(e) {
      if (send('submit', input ? input.value : '')) e.preventDefault();
    });
  }
  document.addEventListener('click', function(e) {
    var chip = e.target.closest ? e.target.closest('.chips .chip') : null;
    if (!chip) return;
    if (send('topic', chip.getAttribute('data-topic'))) e.preventDefault();
  });
})();
`
