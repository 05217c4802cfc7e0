package render

import "html/template"

// viewerData feeds the viewer template. The node and edge sets are
// pre-encoded JSON and injected verbatim into the embedded script.
type viewerData struct {
	Source   string
	ReportID string
	Tool     string
	MaxLevel int
	Nodes    template.JS
	Deps     template.JS
	Ancestry template.JS
}

var viewerTemplate = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="report-id" content="{{.ReportID}}">
    <meta name="generator" content="{{.Tool}}">
    <title>Global Trace Visualization</title>
    <script src="https://d3js.org/d3.v7.min.js"></script>
    <style>
        body {
            margin: 0;
            padding: 20px;
            font-family: Arial, sans-serif;
            background-color: #f5f5f5;
        }

        #container {
            background-color: white;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            padding: 20px;
        }

        h1 {
            text-align: center;
            color: #333;
            margin-top: 0;
        }

        .source-info {
            text-align: center;
            color: #666;
            font-size: 14px;
            margin-bottom: 15px;
            font-style: italic;
        }

        #graph {
            border: 1px solid #ddd;
            border-radius: 4px;
            background-color: #fafafa;
        }

        .link {
            stroke: #999;
            stroke-opacity: 0.6;
            stroke-width: 2px;
            fill: none;
            marker-end: url(#arrowhead);
        }

        .link:hover {
            stroke: #333;
            stroke-opacity: 1;
            stroke-width: 3px;
        }

        .node circle, .node rect {
            stroke: #fff;
            stroke-width: 3px;
            cursor: move;
        }

        .node text {
            font-size: 12px;
            pointer-events: none;
            text-anchor: middle;
            font-weight: bold;
        }

        .tooltip {
            position: absolute;
            padding: 10px;
            background-color: rgba(0, 0, 0, 0.8);
            color: white;
            border-radius: 4px;
            pointer-events: none;
            font-size: 12px;
            opacity: 0;
            transition: opacity 0.3s;
        }

        .legend {
            margin-top: 20px;
            text-align: center;
            font-size: 14px;
            color: #666;
        }

        .legend-item {
            display: inline-block;
            margin: 0 15px;
        }

        .legend-color {
            display: inline-block;
            width: 16px;
            height: 16px;
            border-radius: 50%;
            margin-right: 5px;
            vertical-align: middle;
        }

        .controls {
            text-align: center;
            margin-bottom: 15px;
        }

        button {
            padding: 8px 16px;
            margin: 0 5px;
            border: none;
            border-radius: 4px;
            background-color: #4CAF50;
            color: white;
            cursor: pointer;
            font-size: 14px;
        }

        button:hover {
            background-color: #45a049;
        }
    </style>
</head>
<body>
    <div id="container">
        <h1>Global Trace Visualization</h1>
        <div class="source-info">Source: {{.Source}}</div>
        <div class="controls">
            <button onclick="resetPositions()">Reset Positions</button>
            <button onclick="centerGraph()">Center View</button>
        </div>
        <svg id="graph"></svg>
        <div class="legend" id="legend"></div>
    </div>
    <div class="tooltip" id="tooltip"></div>

    <script>
        const nodes = {{.Nodes}};
        const links = {{.Deps}};
        const ancestryLinks = {{.Ancestry}};
        const maxLevel = {{.MaxLevel}};

        const allLinks = [...links, ...ancestryLinks];

        const colorScale = d3.scaleSequential()
            .domain([0, Math.max(maxLevel, 1)])
            .interpolator(d3.interpolateViridis);

        const legend = d3.select("#legend");
        for (let i = 0; i <= maxLevel; i++) {
            const item = legend.append("div").attr("class", "legend-item");
            item.append("span")
                .attr("class", "legend-color")
                .style("background-color", colorScale(i));
            item.append("span").text("Level L" + i);
        }
        legend.append("div").attr("class", "legend-item").style("margin-top", "10px")
            .html('&#9473;&#9473; Transformation Flow');
        legend.append("div").attr("class", "legend-item")
            .html('<span style="color: #0066cc">&#9481;&#9481;</span> Version Evolution');
        legend.append("div").attr("class", "legend-item")
            .html('<span style="color: #cc6600">&#9481;&#9481;</span> Variant Sibling');

        const width = window.innerWidth - 80;
        const height = 600;

        const svg = d3.select("#graph")
            .attr("width", width)
            .attr("height", height);

        svg.append("defs").append("marker")
            .attr("id", "arrowhead")
            .attr("viewBox", "0 -5 10 10")
            .attr("refX", 25)
            .attr("refY", 0)
            .attr("markerWidth", 6)
            .attr("markerHeight", 6)
            .attr("orient", "auto")
            .append("path")
            .attr("d", "M0,-5L10,0L0,5")
            .attr("fill", "#999");

        const zoom = d3.zoom()
            .scaleExtent([0.1, 4])
            .on("zoom", (event) => {
                g.attr("transform", event.transform);
            });

        svg.call(zoom);

        const g = svg.append("g");

        const simulation = d3.forceSimulation(nodes)
            .force("link", d3.forceLink(allLinks.map(l => ({source: l.source, target: l.target}))).id(d => d.id).distance(150))
            .force("charge", d3.forceManyBody().strength(-500))
            .force("center", d3.forceCenter(width / 2, height / 2))
            .force("collision", d3.forceCollide().radius(50));

        const link = g.append("g")
            .selectAll("path")
            .data(links)
            .join("path")
            .attr("class", "link");

        const ancestryLink = g.append("g")
            .selectAll("path")
            .data(ancestryLinks)
            .join("path")
            .attr("class", "link")
            .style("stroke", d => d.kind === "ancestry-version" ? "#0066cc" : "#cc6600")
            .style("stroke-dasharray", "5,5")
            .style("stroke-width", "2px");

        const node = g.append("g")
            .selectAll("g")
            .data(nodes)
            .join("g")
            .attr("class", "node")
            .call(d3.drag()
                .on("start", dragstarted)
                .on("drag", dragged)
                .on("end", dragended));

        // Models are squares, traces are circles.
        node.each(function(d) {
            const sel = d3.select(this);
            if (d.kind === "model") {
                sel.append("rect")
                    .attr("x", -18).attr("y", -18)
                    .attr("width", 36).attr("height", 36)
                    .style("fill", colorScale(d.level));
            } else {
                sel.append("circle")
                    .attr("r", 20)
                    .style("fill", colorScale(d.level));
            }
        });

        node.append("text")
            .attr("dy", 35)
            .text(d => d.name);

        const tooltip = d3.select("#tooltip");

        node.on("mouseenter", (event, d) => {
            let html = "<strong>" + d.name + "</strong><br/>";
            html += "Kind: " + d.kind + " (" + d.tag + ")<br/>";
            if (d.version) html += "Version: " + d.version + "<br/>";
            if (d.transformation) html += "Transformation: " + d.transformation + "<br/>";
            if (d.kind === "trace") html += "Traced Rules: " + d.numRules + "<br/>";
            html += "Level: L" + d.level;
            tooltip
                .style("opacity", 1)
                .html(html)
                .style("left", (event.pageX + 10) + "px")
                .style("top", (event.pageY - 10) + "px");
        })
        .on("mouseleave", () => {
            tooltip.style("opacity", 0);
        });

        function lineTo(d) {
            const s = typeof d.source === "object" ? d.source : nodeById(d.source);
            const t = typeof d.target === "object" ? d.target : nodeById(d.target);
            return "M" + s.x + "," + s.y + " L" + t.x + "," + t.y;
        }

        const byId = new Map(nodes.map(n => [n.id, n]));
        function nodeById(id) { return byId.get(id); }

        simulation.on("tick", () => {
            link.attr("d", lineTo);
            ancestryLink.attr("d", lineTo);
            node.attr("transform", d => "translate(" + d.x + "," + d.y + ")");
        });

        function dragstarted(event, d) {
            if (!event.active) simulation.alphaTarget(0.3).restart();
            d.fx = d.x;
            d.fy = d.y;
        }

        function dragged(event, d) {
            d.fx = event.x;
            d.fy = event.y;
        }

        function dragended(event, d) {
            if (!event.active) simulation.alphaTarget(0);
        }

        function resetPositions() {
            nodes.forEach(d => {
                d.fx = null;
                d.fy = null;
            });
            simulation.alpha(1).restart();
        }

        function centerGraph() {
            svg.transition().duration(750).call(
                zoom.transform,
                d3.zoomIdentity
            );
        }
    </script>
</body>
</html>
`))
