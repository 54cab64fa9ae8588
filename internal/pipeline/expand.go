package pipeline

// ExpandScript is the fixed expansion routine run by script-executing
// engines after load. It only toggles state already present in the page:
// no clicks, no network, no page-defined functions. Returns the number of
// elements it changed, at most 500.
const ExpandScript = `() => {
  const limit = 500;
  let changed = 0;
  const touch = (el, fn) => { if (changed < limit) { fn(el); changed++; } };
  document.querySelectorAll('details:not([open])').forEach(el => touch(el, d => { d.open = true; }));
  document.querySelectorAll('[aria-expanded="false"]').forEach(el => touch(el, t => {
    t.setAttribute('aria-expanded', 'true');
    const id = t.getAttribute('aria-controls');
    const target = id ? document.getElementById(id) : null;
    if (target) { target.hidden = false; target.style.display = 'block'; }
  }));
  document.querySelectorAll('.collapse:not(.show)').forEach(el => touch(el, c => c.classList.add('show')));
  return changed;
}`
