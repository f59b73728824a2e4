package config

// Template returns the starter config written by "postsmith init"
func Template() string {
	return `{
  // Prefix for every generated URL, e.g. "https://example.com/data"
  "baseUrl": "",

  // Markdown sources, relative to this file
  "inputDir": "content",

  // Generated JSON, relative to this file
  "outputDir": "public/data",

  "postsDir": "posts",
  "extensions": [".md", ".markdown"],
  "ignoreFile": ".postsignore",
  "hashedNames": false,
  "history": true,

  // Remove a block to disable that index
  "collection": {
    "itemsPerPage": 10,
    // "date ascend", "date descend", "lex ascend", "lex descend" or ""
    "sort": "date descend",
    "excerpt": { "rule": "CustomTag", "tag": "<!--more-->", "format": "markdown" },
  },
  "tag": {
    "propName": "tags",
    "itemsPerPage": 10,
    "sort": "date descend",
    "excerpt": { "rule": "ByLines", "lines": 5 },
  },
  "category": {
    "propName": "categories",
    // "frontmatter" reads propName, "path" uses the source directory
    "rule": "frontmatter",
    "itemsPerPage": 10,
    "sort": "lex ascend",
    "excerpt": { "rule": "NoContent" },
  },
}
`
}
