package transparency

// In-page scripts used against the portal. The portal is an uncontrolled
// surface that changes without notice, so each script tries an ordered
// list of selectors and patterns rather than a single known structure.

// clickFirstResultScript clicks the first element that looks like a
// search result. Returns true when something was clicked.
const clickFirstResultScript = `(() => {
	const selectors = [
		"material-list material-list-item",
		"div[role='listbox'] div[role='option']",
		".search-results-container .search-result",
		"[role='list'] [role='listitem']",
		"[role='tab']",
		"material-list-item"
	];

	for (const selector of selectors) {
		const elements = document.querySelectorAll(selector);
		if (elements && elements.length > 0) {
			elements[0].click();
			return true;
		}
	}

	const patterns = ['result', 'item', 'option', 'listitem'];
	for (const pattern of patterns) {
		const elements = document.querySelectorAll('*[class*="' + pattern + '"]');
		if (elements && elements.length > 0) {
			elements[0].click();
			return true;
		}
	}

	return false;
})()`

// candidateScanScript collects advertiser identifiers found near
// occurrences of the queried name, plus identifiers exposed through
// data attributes. The advertiser name is interpolated as %s (already
// quoted and lowercased by the caller).
const candidateScanScript = `(() => {
	const advertiser = %s;
	const idPattern = /AR\d+/;
	const candidates = [];

	for (const el of Array.from(document.querySelectorAll('*'))) {
		if (!el.textContent || !el.textContent.toLowerCase().includes(advertiser)) {
			continue;
		}
		const parent = el.parentElement;
		if (!parent) {
			continue;
		}
		const match = parent.textContent.match(idPattern);
		if (match) {
			candidates.push({ id: match[0], name: el.textContent });
		}
	}

	const attributed = document.querySelectorAll('[data-advertiser-id], [data-id], [id*="advertiser"]');
	for (const el of attributed) {
		const advertiserId = el.getAttribute('data-advertiser-id');
		if (advertiserId) {
			candidates.push({ id: advertiserId, name: el.textContent || "" });
			continue;
		}
		const dataId = el.getAttribute('data-id');
		if (dataId && dataId.match(idPattern)) {
			candidates.push({ id: dataId, name: el.textContent || "" });
			continue;
		}
		if (el.id && el.id.includes('advertiser')) {
			const match = el.id.match(idPattern);
			if (match) {
				candidates.push({ id: match[0], name: el.textContent || "" });
			}
		}
	}

	return candidates;
})()`

// videoCountScript counts video indicators on an advertiser's VIDEO
// format page. Returns 0 when the page explicitly says there are no
// ads, otherwise falls back to counting generic ad containers.
const videoCountScript = `(() => {
	const selectors = [
		'video',
		'iframe[src*="youtube"]',
		'iframe[src*="vimeo"]',
		'div[role="region"][aria-label*="carousel"]',
		'.video-container',
		'div[class*="video"]',
		'div[id*="video"]',
		'div[class*="carousel"]',
		'div[class*="slider"]'
	];

	for (const selector of selectors) {
		const elements = document.querySelectorAll(selector);
		if (elements && elements.length > 0) {
			return elements.length;
		}
	}

	const noVideoTexts = [
		'no video ads',
		'no videos',
		'no ads found',
		'no results',
		'no ads to show'
	];

	const pageText = document.body.innerText.toLowerCase();
	for (const text of noVideoTexts) {
		if (pageText.includes(text)) {
			return 0;
		}
	}

	const adElements = document.querySelectorAll('div[class*="ad"], div[id*="ad"], div[aria-label*="ad"]');
	return adElements.length;
})()`

// searchInputProbeScript locates the most likely search input and
// returns its outer HTML, or "" when the page has no inputs at all.
const searchInputProbeScript = `(() => {
	const selectors = [
		'input[type="search"]',
		'input[placeholder*="search" i]',
		'input[placeholder*="find" i]',
		'input[aria-label*="search" i]',
		'input.search',
		'input.searchbox',
		'input.query',
		'input.input-area',
		'input[role="search"]',
		'input[role="searchbox"]'
	];

	for (const selector of selectors) {
		const element = document.querySelector(selector);
		if (element) {
			return element.outerHTML;
		}
	}

	const inputs = document.querySelectorAll('input');
	if (inputs.length > 0) {
		return inputs[0].outerHTML;
	}

	return "";
})()`

// locationScript reads the current URL. Evaluated instead of relying on
// frame navigation events since soft navigations don't emit those.
const locationScript = `window.location.href`
