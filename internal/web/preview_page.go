package web

import "net/http"

// The page polls the rendered frame once per second, the active cadence.
const previewPage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>watchface preview</title>
<style>body{background:#222;color:#ddd;font-family:sans-serif;text-align:center}img{image-rendering:pixelated;width:480px;border-radius:50%;margin-top:2em}</style>
</head>
<body>
<img id="frame" src="/api/v1/frame.png" alt="frame">
<pre id="snapshot"></pre>
<script>
setInterval(function () {
  document.getElementById("frame").src = "/api/v1/frame.png?t=" + Date.now();
  fetch("/api/v1/snapshot").then(function (r) { return r.json(); }).then(function (s) {
    document.getElementById("snapshot").textContent = JSON.stringify(s, null, 2);
  });
}, 1000);
</script>
</body>
</html>
`

func PreviewPageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(previewPage))
	})
}
