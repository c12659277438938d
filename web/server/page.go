package server

// indexPage polls the frame and progress endpoints and posts save/close
const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Progressive Path Tracer</title>
<style>
body { background: #202020; color: #ddd; font-family: sans-serif; margin: 2em; }
img { image-rendering: pixelated; border: 1px solid #444; max-width: 100%; }
button { margin-right: .5em; }
#console { font-family: monospace; font-size: 12px; max-height: 12em; overflow-y: auto; }
.warning { color: #e0c060; } .error { color: #e06060; }
</style>
</head>
<body>
<h1 id="title">Progressive Path Tracer</h1>
<img id="frame" alt="render">
<p><progress id="bar" max="1" value="0"></progress> <span id="status">waiting for first frame</span></p>
<p><button onclick="post('save')">Save</button><button onclick="post('close')">Stop</button></p>
<pre id="inspect"></pre>
<div id="console"></div>
<script>
const frame = document.getElementById('frame');
function post(event) { fetch('/api/' + event, {method: 'POST'}); }
function refresh(p) {
  document.getElementById('title').textContent = p.scene;
  document.getElementById('bar').value = p.progress;
  document.getElementById('status').textContent =
    (100 * p.progress).toFixed(1) + '% - ' + p.results + ' results - ' + (p.elapsedMs / 1000).toFixed(1) + 's';
  if (p.frames > 0) frame.src = '/api/frame.png?f=' + p.frames;
}
const stream = new EventSource('/api/stream');
stream.addEventListener('progress', e => refresh(JSON.parse(e.data)));
frame.addEventListener('click', e => {
  const x = Math.floor(e.offsetX * frame.naturalWidth / frame.width);
  const y = Math.floor(e.offsetY * frame.naturalHeight / frame.height);
  fetch('/api/inspect?x=' + x + '&y=' + y).then(r => r.json()).then(j => {
    document.getElementById('inspect').textContent = JSON.stringify(j, null, 2);
  });
});
setInterval(() => fetch('/api/console').then(r => r.json()).then(lines => {
  document.getElementById('console').innerHTML = lines.slice(-50).map(l =>
    '<div class="' + l.level + '">' + l.message.replace(/</g, '&lt;') + '</div>').join('');
}), 2000);
</script>
</body>
</html>
`
